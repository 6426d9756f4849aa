package router

import (
	"github.com/TomarJatin/Ai-Influencer-sub000/controller"
	"github.com/TomarJatin/Ai-Influencer-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		public := api.Group("/user")
		{
			public.POST("/register", controller.UserRegister)
			public.POST("/login", controller.UserLogin)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/chats", controller.CreateChat)
			protected.GET("/chats", controller.GetChats)
			protected.GET("/chats/:id", controller.GetChat)
			protected.PATCH("/chats/:id", controller.UpdateChatTitle)
			protected.DELETE("/chats/:id", controller.DeleteChat)
			protected.POST("/chats/:id/messages", controller.SendMessage)

			protected.POST("/influencers", controller.CreateInfluencer)
			protected.GET("/influencers", controller.GetInfluencers)
			protected.GET("/influencers/:id", controller.GetInfluencer)
			protected.PATCH("/influencers/:id", controller.UpdateInfluencer)
			protected.DELETE("/influencers/:id", controller.DeleteInfluencer)

			protected.POST("/ideas", controller.CreateIdea)
			protected.GET("/ideas", controller.GetIdeas)
			protected.GET("/ideas/search", controller.SearchIdeas)
			protected.GET("/ideas/:id", controller.GetIdea)
			protected.PATCH("/ideas/:id", controller.UpdateIdea)
			protected.DELETE("/ideas/:id", controller.DeleteIdea)

			protected.POST("/media/images", controller.CreateImageGeneration)
			protected.POST("/media/videos", controller.CreateVideoGeneration)
			protected.GET("/media/jobs", controller.GetGenerationJobs)
			protected.GET("/media/jobs/:id", controller.GetGenerationJob)

			protected.GET("/oss/policy-token", controller.GetPolicyToken)
			protected.GET("/oss/download-link", controller.GetPresignedURL)
		}
	}

	return r
}
