// Package storage wraps the OSS bucket holding generated media and avatars.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/response"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	osscred "github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/aliyun/credentials-go/credentials"
)

const (
	policyExpiry  = 10 * time.Minute
	presignExpiry = 15 * time.Minute
)

func newClient() *oss.Client {
	cfg := &oss.Config{
		Region: oss.Ptr(config.Cfg.OSS.Region),
		CredentialsProvider: osscred.NewStaticCredentialsProvider(
			config.Cfg.OSS.AccessKeyID,
			config.Cfg.OSS.AccessKeySecret,
		),
	}
	return oss.NewClient(cfg)
}

// Upload stores an object in the bucket and returns its key.
func Upload(ctx context.Context, objectName, contentType string, body io.Reader) error {
	client := newClient()

	_, err := client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(config.Cfg.OSS.BucketName),
		Key:         oss.Ptr(objectName),
		ContentType: oss.Ptr(contentType),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object to oss: %v", err)
	}
	return nil
}

func GetObject(ctx context.Context, objectName string) ([]byte, error) {
	client := newClient()

	result, err := client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from oss: %v", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %v", err)
	}
	return data, nil
}

func DeleteObject(ctx context.Context, objectName string) error {
	client := newClient()

	_, err := client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from oss: %v", err)
	}
	return nil
}

// GeneratePresignedURL signs a temporary download link for an object.
func GeneratePresignedURL(ctx context.Context, objectName string) (string, error) {
	client := newClient()

	result, err := client.Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	}, oss.PresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %v", err)
	}

	return result.URL, nil
}

// GeneratePolicyToken signs a V4 post policy so the browser can upload
// directly to OSS. Uploads are confined to the caller's own prefix.
func GeneratePolicyToken(email string) (*response.GetPolicyTokenResponse, error) {
	cred, err := credentials.NewCredential(&credentials.Config{
		Type:            oss.Ptr("access_key"),
		AccessKeyId:     oss.Ptr(config.Cfg.OSS.AccessKeyID),
		AccessKeySecret: oss.Ptr(config.Cfg.OSS.AccessKeySecret),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %v", err)
	}

	credModel, err := cred.GetCredential()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %v", err)
	}

	now := time.Now().UTC()
	dateStamp := now.Format("20060102")
	ossDate := now.Format("20060102T150405Z")
	expiration := now.Add(policyExpiry).Format("2006-01-02T15:04:05.000Z")

	region := config.Cfg.OSS.Region
	credentialScope := fmt.Sprintf("%s/%s/%s/oss/aliyun_v4_request",
		oss.ToString(credModel.AccessKeyId), dateStamp, region)

	dir := email + "/"
	conditions := []any{
		map[string]string{"bucket": config.Cfg.OSS.BucketName},
		map[string]string{"x-oss-signature-version": "OSS4-HMAC-SHA256"},
		map[string]string{"x-oss-credential": credentialScope},
		map[string]string{"x-oss-date": ossDate},
		[]any{"starts-with", "$key", dir},
	}

	securityToken := oss.ToString(credModel.SecurityToken)
	if securityToken != "" {
		conditions = append(conditions, map[string]string{"x-oss-security-token": securityToken})
	}

	policyDoc, err := json.Marshal(map[string]any{
		"expiration": expiration,
		"conditions": conditions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal policy: %v", err)
	}
	policy := base64.StdEncoding.EncodeToString(policyDoc)

	signingKey := hmacSHA256([]byte("aliyun_v4"+oss.ToString(credModel.AccessKeySecret)), dateStamp)
	signingKey = hmacSHA256(signingKey, region)
	signingKey = hmacSHA256(signingKey, "oss")
	signingKey = hmacSHA256(signingKey, "aliyun_v4_request")
	signature := fmt.Sprintf("%x", hmacSHA256(signingKey, policy))

	host := fmt.Sprintf("https://%s.%s", config.Cfg.OSS.BucketName, config.Cfg.OSS.Endpoint)

	return &response.GetPolicyTokenResponse{
		Policy:           policy,
		SecurityToken:    securityToken,
		SignatureVersion: "OSS4-HMAC-SHA256",
		Credential:       credentialScope,
		Date:             ossDate,
		Signature:        signature,
		Host:             host,
		Dir:              dir,
	}, nil
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}
