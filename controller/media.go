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
	"github.com/TomarJatin/Ai-Influencer-sub000/service/media"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/mq"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/storage"

	"github.com/gin-gonic/gin"
)

func CreateImageGeneration(c *gin.Context) {
	createGeneration(c, model.GenerationKindImage, mq.TagImage)
}

func CreateVideoGeneration(c *gin.Context) {
	createGeneration(c, model.GenerationKindVideo, mq.TagVideo)
}

func createGeneration(c *gin.Context, kind model.GenerationKind, tag string) {
	var req request.CreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	if _, err := dao.GetInfluencer(email, req.InfluencerID); err != nil {
		if errors.Is(err, dao.ErrInfluencerNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrInfluencerNotFound.Error(),
			})
			return
		}
		slog.Error(ErrCreateGenerationJob.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateGenerationJob.Error(),
		})
		return
	}

	job := model.GenerationJob{
		UserEmail:    email,
		InfluencerID: req.InfluencerID,
		Kind:         kind,
		Prompt:       req.Prompt,
		Status:       model.GenerationStatusPending,
	}
	if err := dao.CreateGenerationJob(&job); err != nil {
		slog.Error(ErrCreateGenerationJob.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateGenerationJob.Error(),
		})
		return
	}

	err := mq.SendMessage(c.Request.Context(), &mq.Message{
		Topic: mq.TopicMediaGeneration,
		Tag:   tag,
		Payload: media.GenerationMessage{
			JobID: job.ID,
		},
	})
	if err != nil {
		slog.Error("Failed to publish generation message", "job_id", job.ID, "err", err)
		if updateErr := dao.UpdateGenerationJobStatus(job.ID, model.GenerationStatusFailed, map[string]any{
			"error_text": "failed to enqueue generation task",
		}); updateErr != nil {
			slog.Error("Failed to mark job failed", "job_id", job.ID, "err", updateErr)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateGenerationJob.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: generationJobResponse(c, &job),
	})
}

func GetGenerationJob(c *gin.Context) {
	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrGenerationJobNotFound.Error(),
		})
		return
	}

	job, err := dao.GetGenerationJob(email, uint(id))
	if err != nil {
		if errors.Is(err, dao.ErrGenerationJobNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrGenerationJobNotFound.Error(),
			})
			return
		}
		slog.Error(ErrGetGenerationJob.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetGenerationJob.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: generationJobResponse(c, job),
	})
}

func GetGenerationJobs(c *gin.Context) {
	email := c.GetString("email")
	jobs, err := dao.GetGenerationJobsByEmail(email)
	if err != nil {
		slog.Error(ErrGetGenerationJobs.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetGenerationJobs.Error(),
		})
		return
	}

	var resp response.GetGenerationJobsResponse
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, generationJobResponse(c, &jobs[i]))
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func GetPolicyToken(c *gin.Context) {
	email := c.GetString("email")
	policyToken, err := storage.GeneratePolicyToken(email)
	if err != nil {
		slog.Error(ErrGeneratePolicyToken.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGeneratePolicyToken.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: policyToken,
	})
}

func GetPresignedURL(c *gin.Context) {
	email := c.GetString("email")
	fileName := c.Query("file-name")
	objectName := email + "/" + fileName

	url, err := storage.GeneratePresignedURL(c.Request.Context(), objectName)
	if err != nil {
		slog.Error(ErrGetPreSignedURL.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetPreSignedURL.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.GetPresignedURLResponse{
			URL: url,
		},
	})
}

func generationJobResponse(c *gin.Context, job *model.GenerationJob) response.GenerationJobResponse {
	resp := response.GenerationJobResponse{
		ID:           job.ID,
		InfluencerID: job.InfluencerID,
		Kind:         job.Kind,
		Prompt:       job.Prompt,
		Status:       job.Status,
		ErrorText:    job.ErrorText,
		CreatedAt:    job.CreatedAt,
	}

	if job.Status == model.GenerationStatusCompleted && job.ResultObject != "" {
		url, err := storage.GeneratePresignedURL(c.Request.Context(), job.ResultObject)
		if err != nil {
			slog.Warn("failed to presign generated asset", "job_id", job.ID, "err", err)
		} else {
			resp.ResultURL = url
		}
	}

	return resp
}
