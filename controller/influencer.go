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
	"github.com/TomarJatin/Ai-Influencer-sub000/service/storage"

	"github.com/gin-gonic/gin"
)

func CreateInfluencer(c *gin.Context) {
	var req request.CreateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	influencer := model.Influencer{
		UserEmail:    c.GetString("email"),
		Name:         req.Name,
		Persona:      req.Persona,
		Appearance:   req.Appearance,
		AvatarObject: req.AvatarObject,
	}
	if err := dao.CreateInfluencer(&influencer); err != nil {
		slog.Error(ErrCreateInfluencer.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateInfluencer.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: influencerResponse(c, &influencer, false),
	})
}

func GetInfluencers(c *gin.Context) {
	email := c.GetString("email")
	influencers, err := dao.GetInfluencersByEmail(email)
	if err != nil {
		slog.Error(ErrGetInfluencers.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetInfluencers.Error(),
		})
		return
	}

	var resp response.GetInfluencersResponse
	for i := range influencers {
		resp.Influencers = append(resp.Influencers, influencerResponse(c, &influencers[i], false))
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func GetInfluencer(c *gin.Context) {
	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrInfluencerNotFound.Error(),
		})
		return
	}

	influencer, err := dao.GetInfluencer(email, uint(id))
	if err != nil {
		if errors.Is(err, dao.ErrInfluencerNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrInfluencerNotFound.Error(),
			})
			return
		}
		slog.Error(ErrGetInfluencer.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetInfluencer.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: influencerResponse(c, influencer, true),
	})
}

func UpdateInfluencer(c *gin.Context) {
	var req request.UpdateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Persona != nil {
		updates["persona"] = *req.Persona
	}
	if req.Appearance != nil {
		updates["appearance"] = *req.Appearance
	}
	if req.AvatarObject != nil {
		updates["avatar_object"] = *req.AvatarObject
	}

	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrInfluencerNotFound.Error(),
		})
		return
	}

	if err := dao.UpdateInfluencer(email, uint(id), updates); err != nil {
		if errors.Is(err, dao.ErrInfluencerNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrInfluencerNotFound.Error(),
			})
			return
		}
		slog.Error(ErrUpdateInfluencer.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateInfluencer.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteInfluencer(c *gin.Context) {
	email := c.GetString("email")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrInfluencerNotFound.Error(),
		})
		return
	}

	if err := dao.DeleteInfluencer(email, uint(id)); err != nil {
		if errors.Is(err, dao.ErrInfluencerNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrInfluencerNotFound.Error(),
			})
			return
		}
		slog.Error(ErrDeleteInfluencer.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteInfluencer.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

// influencerResponse maps the row to its response shape, presigning the
// avatar only where the caller needs a browsable URL.
func influencerResponse(c *gin.Context, influencer *model.Influencer, withAvatarURL bool) response.InfluencerResponse {
	resp := response.InfluencerResponse{
		ID:           influencer.ID,
		Name:         influencer.Name,
		Persona:      influencer.Persona,
		Appearance:   influencer.Appearance,
		AvatarObject: influencer.AvatarObject,
		CreatedAt:    influencer.CreatedAt,
	}

	if withAvatarURL && influencer.AvatarObject != "" {
		url, err := storage.GeneratePresignedURL(c.Request.Context(), influencer.AvatarObject)
		if err != nil {
			slog.Warn("failed to presign avatar", "influencer_id", influencer.ID, "err", err)
		} else {
			resp.AvatarURL = url
		}
	}

	return resp
}
