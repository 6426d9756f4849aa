package chat

import (
	"encoding/json"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/gin-gonic/gin"
)

// EventSink is the live output of one chat turn. The orchestrator writes
// self-describing events in production order; the transport behind the sink
// is not its concern.
type EventSink interface {
	Send(event string, data any) error
	Close()
	CloseWithError(message string)
}

type TextDeltaEvent struct {
	Text string `json:"text"`
}

type ReasoningDeltaEvent struct {
	Text string `json:"text"`
}

type ToolCallEvent struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type ToolResultEvent struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Result model.ToolResult `json:"result"`
}

// GinEventSink streams events to the HTTP response as SSE.
type GinEventSink struct {
	c *gin.Context
}

var _ EventSink = &GinEventSink{}

func NewGinEventSink(c *gin.Context) *GinEventSink {
	return &GinEventSink{c: c}
}

func (s *GinEventSink) Send(event string, data any) error {
	utils.SendSSEMessage(s.c, event, data)
	return nil
}

func (s *GinEventSink) Close() {
	utils.SendSSEMessage(s.c, utils.EventDone, "")
}

func (s *GinEventSink) CloseWithError(message string) {
	utils.SendSSEMessage(s.c, utils.EventError, message)
	utils.SendSSEMessage(s.c, utils.EventDone, "")
}
