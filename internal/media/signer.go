// Package media issues signed direct-upload parameters for Cloudinary.
package media

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const DefaultFolder = "jewellery"

var (
	ErrNotConfigured       = errors.New("media: cloudinary not configured")
	ErrInvalidResourceType = errors.New("media: resource_type must be image or video")
)

type Credentials struct {
	Signature    string `json:"signature"`
	Timestamp    int64  `json:"timestamp"`
	CloudName    string `json:"cloud_name"`
	APIKey       string `json:"api_key"`
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"`
}

type Signer struct {
	CloudName string
	APIKey    string
	APISecret string
}

func NewSigner(cloudName, apiKey, apiSecret string) *Signer {
	return &Signer{CloudName: cloudName, APIKey: apiKey, APISecret: apiSecret}
}

// Sign returns upload parameters signed at now. An empty resourceType means
// image and an empty folder means DefaultFolder.
func (s *Signer) Sign(resourceType, folder string, now time.Time) (Credentials, error) {
	if resourceType == "" {
		resourceType = "image"
	}
	if resourceType != "image" && resourceType != "video" {
		return Credentials{}, ErrInvalidResourceType
	}
	if strings.TrimSpace(s.APISecret) == "" {
		return Credentials{}, ErrNotConfigured
	}
	if folder == "" {
		folder = DefaultFolder
	}

	ts := now.Unix()
	sig := SignParams(map[string]string{
		"timestamp":     strconv.FormatInt(ts, 10),
		"folder":        folder,
		"resource_type": resourceType,
	}, s.APISecret)

	return Credentials{
		Signature:    sig,
		Timestamp:    ts,
		CloudName:    s.CloudName,
		APIKey:       s.APIKey,
		Folder:       folder,
		ResourceType: resourceType,
	}, nil
}

// SignParams drops empty values, joins the rest as sorted k=v pairs with '&',
// appends the secret and returns the hex SHA-1.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
