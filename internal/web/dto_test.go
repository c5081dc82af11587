package web

import (
	"testing"

	"github.com/google/uuid"
)

func Test_judgeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     judgeRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: judgeRequest{
				Winner: uuid.NameSpaceDNS,
				Loser:  uuid.NameSpaceURL,
			},
			wantErr: false,
		},
		{
			name: "missing winner",
			req: judgeRequest{
				Winner: uuid.Nil,
				Loser:  uuid.NameSpaceURL,
			},
			wantErr: true,
		},
		{
			name: "missing loser",
			req: judgeRequest{
				Winner: uuid.NameSpaceDNS,
				Loser:  uuid.Nil,
			},
			wantErr: true,
		},
		{
			name: "self duel",
			req: judgeRequest{
				Winner: uuid.NameSpaceDNS,
				Loser:  uuid.NameSpaceDNS,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_validateYear(t *testing.T) {
	tests := []struct {
		name    string
		year    string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"valid", "1984", false},
		{"too short", "84", true},
		{"not a number", "19x4", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validateYear(tt.year); (err != nil) != tt.wantErr {
				t.Errorf("validateYear(%q) error = %v, wantErr %v", tt.year, err, tt.wantErr)
			}
		})
	}
}
