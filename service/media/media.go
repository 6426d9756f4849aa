// Package media runs the asynchronous image/video generation pipeline. Jobs
// arrive over MQ, call the external generation API, and land the produced
// asset in OSS before the job row is marked completed.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/dao"
	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/storage"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/avast/retry-go/v4"
)

const (
	generateAttempts = 3
	generateTimeout  = 5 * time.Minute
)

// Generation can take minutes for video.
var generationClient = utils.NewHTTPClient(utils.WithTimeout(generateTimeout))

type GenerationMessage struct {
	JobID uint `json:"job_id"`
}

type generateRequest struct {
	Kind       string `json:"kind"`
	Prompt     string `json:"prompt"`
	Appearance string `json:"appearance,omitempty"`
}

// HandleGenerationMessage processes one queued generation job. Failures of
// the external API are recorded on the job row and not redelivered; only
// infrastructure errors (DB, OSS) bounce back to the broker for retry.
func HandleGenerationMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var genMsg GenerationMessage
	if err := json.Unmarshal(msg.Body, &genMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %v", err)
	}

	job, err := dao.GetGenerationJobByID(genMsg.JobID)
	if err != nil {
		return fmt.Errorf("failed to load generation job %d: %v", genMsg.JobID, err)
	}

	// Redelivered messages for finished jobs are no-ops.
	if job.Status == model.GenerationStatusCompleted || job.Status == model.GenerationStatusFailed {
		return nil
	}

	if err := dao.UpdateGenerationJobStatus(job.ID, model.GenerationStatusProcessing, nil); err != nil {
		return fmt.Errorf("failed to mark job %d processing: %v", job.ID, err)
	}

	asset, contentType, err := generate(ctx, job)
	if err != nil {
		slog.Error("Media generation failed", "job_id", job.ID, "kind", job.Kind, "err", err)
		return dao.UpdateGenerationJobStatus(job.ID, model.GenerationStatusFailed, map[string]any{
			"error_text": err.Error(),
		})
	}

	objectName := objectNameFor(job, contentType)
	if err := storage.Upload(ctx, objectName, contentType, bytes.NewReader(asset)); err != nil {
		return fmt.Errorf("failed to upload generated asset for job %d: %v", job.ID, err)
	}

	return dao.UpdateGenerationJobStatus(job.ID, model.GenerationStatusCompleted, map[string]any{
		"result_object": objectName,
	})
}

// generate calls the external generation API with retries and returns the
// raw asset bytes plus their content type.
func generate(ctx context.Context, job *model.GenerationJob) ([]byte, string, error) {
	appearance := ""
	influencer, err := dao.GetInfluencer(job.UserEmail, job.InfluencerID)
	if err == nil {
		appearance = influencer.Appearance
	}

	body, err := json.Marshal(generateRequest{
		Kind:       string(job.Kind),
		Prompt:     job.Prompt,
		Appearance: appearance,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal generate request: %v", err)
	}

	var asset []byte
	var contentType string

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost,
				config.Cfg.MediaGen.Endpoint+"/v1/generate", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+config.Cfg.MediaGen.APIKey)

			resp, err := generationClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
				return fmt.Errorf("generation API returned %d: %s", resp.StatusCode, payload)
			}

			asset, err = io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			contentType = resp.Header.Get("Content-Type")
			return nil
		},
		retry.Attempts(generateAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying media generation",
				"attempt", n+1,
				"job_id", job.ID,
				"err", err)
		}),
	)
	if err != nil {
		return nil, "", err
	}

	if contentType == "" {
		if job.Kind == model.GenerationKindVideo {
			contentType = "video/mp4"
		} else {
			contentType = "image/png"
		}
	}

	return asset, contentType, nil
}

func objectNameFor(job *model.GenerationJob, contentType string) string {
	ext := "png"
	switch contentType {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	case "video/mp4":
		ext = "mp4"
	}
	return fmt.Sprintf("%s/generated/%d.%s", job.UserEmail, job.ID, ext)
}
