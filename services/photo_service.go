package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"flareguard/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// PhotoTagService turns a meal photo into suggested ingredient tags: the
// image is stored on S3 and label detection proposes tags the patient can
// edit before submitting the meal.
type PhotoTagService struct {
	client *rekognition.Client
}

func NewPhotoTagService() (*PhotoTagService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &PhotoTagService{client: rekognition.NewFromConfig(cfg)}, nil
}

type PhotoTagResult struct {
	PhotoURL      string   `json:"photo_url"`
	SuggestedTags []string `json:"suggested_tags"`
}

func (s *PhotoTagService) SuggestTags(userID uint, base64Img string) (*PhotoTagResult, error) {
	labels, err := s.detectLabels(base64Img)
	if err != nil {
		return nil, err
	}

	url, err := utils.UploadMealPhoto(base64Img, userID)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(labels))
	for _, l := range labels {
		tags = append(tags, strings.ToLower(l))
	}
	return &PhotoTagResult{PhotoURL: url, SuggestedTags: tags}, nil
}

func (s *PhotoTagService) detectLabels(base64Img string) ([]string, error) {
	idx := strings.Index(base64Img, ",")
	if idx < 0 || !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := s.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, *l.Name)
	}
	return labels, nil
}
