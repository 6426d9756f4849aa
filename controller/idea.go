package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/TomarJatin/Ai-Influencer-sub000/dao"
	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/request"
	"github.com/TomarJatin/Ai-Influencer-sub000/response"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/ideasearch"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/mq"

	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 5

func CreateIdea(c *gin.Context) {
	var req request.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	idea := model.Idea{
		UserEmail: email,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := dao.CreateIdea(&idea); err != nil {
		slog.Error(ErrCreateIdea.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateIdea.Error(),
		})
		return
	}

	publishIdeaIndex(c, mq.TagIndex, ideasearch.ActionIndex, idea.ID, email)

	c.JSON(http.StatusCreated, response.Response{
		Data: response.IdeaResponse{
			ID:        idea.ID,
			Title:     idea.Title,
			Content:   idea.Content,
			CreatedAt: idea.CreatedAt,
		},
	})
}

func GetIdeas(c *gin.Context) {
	email := c.GetString("email")
	ideas, err := dao.GetIdeasByEmail(email)
	if err != nil {
		slog.Error(ErrGetIdeas.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetIdeas.Error(),
		})
		return
	}

	var resp response.GetIdeasResponse
	for _, idea := range ideas {
		resp.Ideas = append(resp.Ideas, response.IdeaResponse{
			ID:        idea.ID,
			Title:     idea.Title,
			Content:   idea.Content,
			CreatedAt: idea.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func GetIdea(c *gin.Context) {
	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrIdeaNotFound.Error(),
		})
		return
	}

	idea, err := dao.GetIdea(email, uint(id))
	if err != nil {
		if errors.Is(err, dao.ErrIdeaNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrIdeaNotFound.Error(),
			})
			return
		}
		slog.Error(ErrGetIdea.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetIdea.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.IdeaResponse{
			ID:        idea.ID,
			Title:     idea.Title,
			Content:   idea.Content,
			CreatedAt: idea.CreatedAt,
		},
	})
}

func UpdateIdea(c *gin.Context) {
	var req request.UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}

	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrIdeaNotFound.Error(),
		})
		return
	}

	if err := dao.UpdateIdea(email, uint(id), updates); err != nil {
		if errors.Is(err, dao.ErrIdeaNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrIdeaNotFound.Error(),
			})
			return
		}
		slog.Error(ErrUpdateIdea.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateIdea.Error(),
		})
		return
	}

	publishIdeaIndex(c, mq.TagIndex, ideasearch.ActionIndex, uint(id), email)

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteIdea(c *gin.Context) {
	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrIdeaNotFound.Error(),
		})
		return
	}

	if err := dao.DeleteIdea(email, uint(id)); err != nil {
		if errors.Is(err, dao.ErrIdeaNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrIdeaNotFound.Error(),
			})
			return
		}
		slog.Error(ErrDeleteIdea.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteIdea.Error(),
		})
		return
	}

	publishIdeaIndex(c, mq.TagDelete, ideasearch.ActionDelete, uint(id), email)

	c.JSON(http.StatusOK, response.Response{})
}

func SearchIdeas(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrMissingQuery.Error(),
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearchLimit)))
	if limit < 1 {
		limit = defaultSearchLimit
	}

	email := c.GetString("email")
	hits, err := ideasearch.Search(c.Request.Context(), email, query, limit)
	if err != nil {
		slog.Error(ErrSearchIdeas.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSearchIdeas.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.SearchIdeasResponse{
			Hits: hits,
		},
	})
}

// publishIdeaIndex is best-effort: the idea row is the source of truth and a
// lost message only delays the index update.
func publishIdeaIndex(c *gin.Context, tag, action string, ideaID uint, email string) {
	err := mq.SendMessage(c.Request.Context(), &mq.Message{
		Topic: mq.TopicIdeaIndex,
		Tag:   tag,
		Payload: ideasearch.IndexMessage{
			Action:    action,
			IdeaID:    ideaID,
			UserEmail: email,
		},
	})
	if err != nil {
		slog.Error("Failed to publish idea index message",
			"idea_id", ideaID,
			"action", action,
			"err", err)
	}
}
