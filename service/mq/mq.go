package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/ideasearch"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/media"

	"github.com/apache/rocketmq-client-go/v2"
	c "github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"github.com/avast/retry-go/v4"
)

const (
	TopicMediaGeneration = "topic_media_generation"
	TagImage             = "tag_image"
	TagVideo             = "tag_video"

	TopicIdeaIndex = "topic_idea_index"
	TagIndex       = "tag_index"
	TagDelete      = "tag_delete"

	consumeGroupMediaGeneration = "cg_media_generation"
	consumeGroupIdeaIndex       = "cg_idea_index"

	sendMessageAttempts  = 3
	maxReconsumeTimes    = 5
	consumeGoroutineNums = 10
)

var (
	producerInstance rocketmq.Producer

	// Media jobs and idea indexing consume in separate groups so a slow
	// generation backlog cannot starve index updates.
	consumerMediaGeneration rocketmq.PushConsumer
	consumerIdeaIndex       rocketmq.PushConsumer

	handlers = make(map[string]MessageHandler)
)

type MessageHandler func(context.Context, *primitive.MessageExt) error

type Message struct {
	Topic   string
	Tag     string
	Payload any
}

func Run() error {
	rlog.SetLogLevel("warn")

	var err error
	consumerMediaGeneration, err = newPushConsumer(consumeGroupMediaGeneration)
	if err != nil {
		return fmt.Errorf("failed to create media consumer: %v", err)
	}

	consumerIdeaIndex, err = newPushConsumer(consumeGroupIdeaIndex)
	if err != nil {
		return fmt.Errorf("failed to create idea index consumer: %v", err)
	}

	producerInstance, err = rocketmq.NewProducer(
		producer.WithNameServer(config.Cfg.MQ.NameServer),
	)
	if err != nil {
		return fmt.Errorf("failed to create producer: %v", err)
	}

	if err := registerHandler(consumerMediaGeneration, TopicMediaGeneration, TagImage+" || "+TagVideo, media.HandleGenerationMessage); err != nil {
		return fmt.Errorf("failed to register handler, topic: %s, err: %v", TopicMediaGeneration, err)
	}

	if err := registerHandler(consumerIdeaIndex, TopicIdeaIndex, TagIndex+" || "+TagDelete, ideasearch.HandleIndexMessage); err != nil {
		return fmt.Errorf("failed to register handler, topic: %s, err: %v", TopicIdeaIndex, err)
	}

	if err := producerInstance.Start(); err != nil {
		return fmt.Errorf("failed to start producer: %v", err)
	}

	if err := consumerMediaGeneration.Start(); err != nil {
		return fmt.Errorf("failed to start media consumer: %v", err)
	}

	if err := consumerIdeaIndex.Start(); err != nil {
		return fmt.Errorf("failed to start idea index consumer: %v", err)
	}

	return nil
}

func newPushConsumer(group string) (rocketmq.PushConsumer, error) {
	return rocketmq.NewPushConsumer(
		c.WithNameServer(config.Cfg.MQ.NameServer),
		c.WithGroupName(group),
		c.WithConsumerModel(c.Clustering),
		c.WithConsumeFromWhere(c.ConsumeFromLastOffset),
		c.WithMaxReconsumeTimes(maxReconsumeTimes),
		c.WithConsumeGoroutineNums(consumeGoroutineNums),
	)
}

func registerHandler(consumer rocketmq.PushConsumer, topic string, tag string, handler MessageHandler) error {
	handlers[topic] = handler

	selector := c.MessageSelector{}
	if tag != "" {
		selector = c.MessageSelector{
			Type:       c.TAG,
			Expression: tag,
		}
	}

	err := consumer.Subscribe(topic, selector, func(ctx context.Context, messages ...*primitive.MessageExt) (c.ConsumeResult, error) {
		for _, msg := range messages {
			h := handlers[msg.Topic]
			if h == nil {
				slog.Warn("No message handler found for topic", "topic", msg.Topic)
				continue
			}

			if err := h(ctx, msg); err != nil {
				slog.Error("Failed to process message",
					"topic", msg.Topic,
					"msg_id", msg.MsgId,
					"error", err)
				return c.ConsumeRetryLater, err
			}
		}
		return c.ConsumeSuccess, nil
	})

	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %v", topic, err)
	}

	return nil
}

func SendMessage(ctx context.Context, message *Message) error {
	payloadJSON, err := json.Marshal(message.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	msg := primitive.NewMessage(message.Topic, payloadJSON)
	if message.Tag != "" {
		msg = msg.WithTag(message.Tag)
	}

	err = retry.Do(
		func() error {
			_, err := producerInstance.SendSync(ctx, msg)
			return err
		},
		retry.Attempts(sendMessageAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying to send message",
				"attempt", n+1,
				"topic", msg.Topic,
				"err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s after retries: %v", msg.Topic, err)
	}

	return nil
}

func Shutdown() {
	if producerInstance != nil {
		producerInstance.Shutdown()
	}
	if consumerMediaGeneration != nil {
		consumerMediaGeneration.Shutdown()
	}
	if consumerIdeaIndex != nil {
		consumerIdeaIndex.Shutdown()
	}
}
