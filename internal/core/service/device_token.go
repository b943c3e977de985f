package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ClaimDeviceID = "device_id"

// DeviceTokenService signs HS256 tokens identifying one runtime instance.
type DeviceTokenService struct {
	secret string
	ttl    time.Duration
}

func NewDeviceTokenService(secret string, ttl time.Duration) *DeviceTokenService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &DeviceTokenService{secret: secret, ttl: ttl}
}

// Issue returns a signed token for a freshly generated device id.
func (s *DeviceTokenService) Issue() (string, string, error) {
	if s.secret == "" {
		return "", "", errors.New("device token: empty signing secret")
	}
	deviceID := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		ClaimDeviceID: deviceID,
		"iat":         now.Unix(),
		"exp":         now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.secret))
	if err != nil {
		return "", "", err
	}
	return signed, deviceID, nil
}
