package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"flareguard/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

// PushService delivers flare alerts to registered mobile devices via SNS
// platform endpoints.
type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform"` // "android" | "ios"
	Token    string `json:"token"`
}

func (p *PushService) tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) RegisterDevice(userID uint, platform, token string) (*models.PushDevice, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform != "android" && platform != "ios" {
		return nil, errors.New("unknown platform")
	}
	if p.fcmPlatformArn == "" {
		return nil, errors.New("SNS_FCM_ARN not set")
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.fcmPlatformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.PushDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   p.tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		UpdatedAt:   time.Now(),
	}
	// Re-registering the same device refreshes its endpoint.
	err = p.db.
		Where("user_id = ? AND token_hash = ?", userID, dev.TokenHash).
		Assign(map[string]interface{}{
			"platform":     dev.Platform,
			"endpoint_arn": dev.EndpointARN,
			"enabled":      true,
			"updated_at":   dev.UpdatedAt,
		}).
		FirstOrCreate(dev).Error
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (p *PushService) SetEnabled(userID uint, enabled bool) error {
	return p.db.Model(&models.PushDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}

// PushToUser publishes to every enabled endpoint; delivery failures disable
// the endpoint instead of surfacing to the caller.
func (p *PushService) PushToUser(userID uint, title, body string, data map[string]string) {
	var devices []models.PushDevice
	if err := p.db.
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&devices).Error; err != nil {
		return
	}

	payload := map[string]any{
		"title": title,
		"body":  body,
		"data":  data,
	}
	msg, _ := json.Marshal(payload)

	for _, dev := range devices {
		_, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			TargetArn: aws.String(dev.EndpointARN),
			Message:   aws.String(string(msg)),
		})
		if err != nil {
			_ = p.db.Model(&models.PushDevice{}).
				Where("id = ?", dev.ID).
				Update("enabled", false).Error
		}
	}
}
