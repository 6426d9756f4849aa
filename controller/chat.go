package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/TomarJatin/Ai-Influencer-sub000/dao"
	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/request"
	"github.com/TomarJatin/Ai-Influencer-sub000/response"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/chat"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	chatStore        *dao.ChatStore
	chatOrchestrator *chat.Orchestrator
)

// InitChat wires the chat handlers to their collaborators. Called once from
// main before the router starts serving.
func InitChat(store *dao.ChatStore, orchestrator *chat.Orchestrator) {
	chatStore = store
	chatOrchestrator = orchestrator
}

func CreateChat(c *gin.Context) {
	var req request.CreateChatRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error(ErrParseRequest.Error(), "err", err)
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
				Msg: ErrParseRequest.Error(),
			})
			return
		}
	}

	email := c.GetString("email")

	if req.InfluencerID != nil {
		if _, err := dao.GetInfluencer(email, *req.InfluencerID); err != nil {
			if errors.Is(err, dao.ErrInfluencerNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
					Msg: ErrInfluencerNotFound.Error(),
				})
				return
			}
			slog.Error(ErrCreateChat.Error(), "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrCreateChat.Error(),
			})
			return
		}
	}

	newChat := model.Chat{
		UserEmail:    email,
		ChatID:       uuid.New().String(),
		Title:        model.DefaultChatTitle,
		InfluencerID: req.InfluencerID,
	}
	if err := chatStore.CreateChat(c.Request.Context(), &newChat); err != nil {
		slog.Error(ErrCreateChat.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateChat.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: response.ChatResponse{
			ChatID:       newChat.ChatID,
			Title:        newChat.Title,
			InfluencerID: newChat.InfluencerID,
			CreatedAt:    newChat.CreatedAt,
		},
	})
}

func GetChats(c *gin.Context) {
	email := c.GetString("email")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	chats, total, err := chatStore.ListChats(c.Request.Context(), email, page, limit)
	if err != nil {
		slog.Error(ErrGetChats.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetChats.Error(),
		})
		return
	}

	resp := response.GetChatsResponse{
		Chats:      make([]response.ChatResponse, 0, len(chats)),
		Pagination: response.NewPagination(total, page, limit),
	}
	for _, item := range chats {
		resp.Chats = append(resp.Chats, response.ChatResponse{
			ChatID:       item.ChatID,
			Title:        item.Title,
			InfluencerID: item.InfluencerID,
			CreatedAt:    item.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func GetChat(c *gin.Context) {
	email := c.GetString("email")
	chatID := c.Param("id")

	item, err := chatStore.GetChat(c.Request.Context(), email, chatID)
	if err != nil {
		if errors.Is(err, dao.ErrChatNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrChatNotFound.Error(),
			})
			return
		}
		slog.Error(ErrGetChat.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetChat.Error(),
		})
		return
	}

	messages, err := chatStore.Messages(c.Request.Context(), chatID)
	if err != nil {
		slog.Error(ErrGetChat.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetChat.Error(),
		})
		return
	}

	resp := response.GetChatResponse{
		Chat: response.ChatResponse{
			ChatID:       item.ChatID,
			Title:        item.Title,
			InfluencerID: item.InfluencerID,
			CreatedAt:    item.CreatedAt,
		},
		Messages: make([]response.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, response.MessageResponse{
			CreatedAt:   m.CreatedAt,
			Role:        m.Role,
			Content:     m.Content,
			Parts:       m.Parts,
			Attachments: m.Attachments,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func UpdateChatTitle(c *gin.Context) {
	var req request.UpdateChatTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	chatID := c.Param("id")
	if err := chatStore.UpdateChatTitle(c.Request.Context(), email, chatID, req.Title); err != nil {
		if errors.Is(err, dao.ErrChatNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrChatNotFound.Error(),
			})
			return
		}
		slog.Error(ErrUpdateChatTitle.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateChatTitle.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteChat(c *gin.Context) {
	email := c.GetString("email")
	chatID := c.Param("id")
	if err := chatStore.DeleteChat(c.Request.Context(), email, chatID); err != nil {
		if errors.Is(err, dao.ErrChatNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrChatNotFound.Error(),
			})
			return
		}
		slog.Error(ErrDeleteChat.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteChat.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

// SendMessage streams one chat turn over SSE. Validation happens before any
// SSE commitment so bad requests still get plain HTTP status codes.
func SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	if req.Message.Role != model.RoleUser {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrInvalidRole.Error(),
		})
		return
	}

	turn, err := chatOrchestrator.Prepare(c.Request.Context(), chat.TurnRequest{
		UserEmail: c.GetString("email"),
		UserName:  c.GetString("name"),
		ChatID:    c.Param("id"),
		Message:   req.Message,
		Model:     req.Model,
	})
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrChatNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrChatNotFound.Error(),
			})
		case errors.Is(err, chat.ErrInvalidModelFormat), errors.Is(err, chat.ErrUnsupportedProvider):
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
				Msg: err.Error(),
			})
		default:
			slog.Error(ErrSendMessage.Error(), "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrSendMessage.Error(),
			})
		}
		return
	}

	utils.SetSSEHeaders(c)

	// The turn keeps running to completion even if the client disconnects,
	// so the assistant message is never lost mid-generation.
	turn.Run(context.WithoutCancel(c.Request.Context()), chat.NewGinEventSink(c))
}
