package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotificationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateNotificationRequest
		wantErr string
	}{
		{
			name: "valid individual",
			req:  CreateNotificationRequest{Message: "hi", Type: NotificationTypeIndividual, TargetUserID: "u1"},
		},
		{
			name: "valid broadcast",
			req:  CreateNotificationRequest{Message: "maintenance tonight", Type: NotificationTypeBroadcast},
		},
		{
			name:    "missing message",
			req:     CreateNotificationRequest{Type: NotificationTypeBroadcast},
			wantErr: "message is required",
		},
		{
			name:    "invalid type",
			req:     CreateNotificationRequest{Message: "hi", Type: "direct"},
			wantErr: "invalid type",
		},
		{
			name:    "individual without target",
			req:     CreateNotificationRequest{Message: "hi", Type: NotificationTypeIndividual},
			wantErr: "target_user_id is required",
		},
		{
			name:    "message too long",
			req:     CreateNotificationRequest{Message: strings.Repeat("x", 2049), Type: NotificationTypeBroadcast},
			wantErr: "cannot exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateNotificationRequest_Normalize(t *testing.T) {
	req := CreateNotificationRequest{
		Message:      "  hello  ",
		Type:         " broadcast ",
		TargetUserID: " u1 ",
	}
	req.Normalize()

	assert.Equal(t, "hello", req.Message)
	assert.Equal(t, NotificationTypeBroadcast, req.Type)
	assert.Equal(t, "u1", req.TargetUserID)
}

func TestReadStatusValid(t *testing.T) {
	assert.True(t, ReadStatusAny.Valid())
	assert.True(t, ReadStatusRead.Valid())
	assert.True(t, ReadStatusUnread.Valid())
	assert.False(t, ReadStatus("seen").Valid())
}

func TestSignUpRequest_Validate(t *testing.T) {
	valid := SignUpRequest{
		Email:     "jane@example.com",
		Password:  "secret1",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	tests := []struct {
		name    string
		mutate  func(*SignUpRequest)
		wantErr string
	}{
		{"valid", func(*SignUpRequest) {}, ""},
		{"bad email", func(r *SignUpRequest) { r.Email = "not-an-email" }, "valid email"},
		{"empty email", func(r *SignUpRequest) { r.Email = "" }, "email is required"},
		{"short password", func(r *SignUpRequest) { r.Password = "abc" }, "at least 6"},
		{"missing first name", func(r *SignUpRequest) { r.FirstName = "" }, "first_name is required"},
		{"missing last name", func(r *SignUpRequest) { r.LastName = "" }, "last_name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
