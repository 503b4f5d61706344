package config

import "testing"

func TestValidate_BaseURLRequiredOutsideLocal(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		baseURL string
		wantErr bool
	}{
		{name: "local without override", env: "development", baseURL: "", wantErr: false},
		{name: "empty env without override", env: "", baseURL: "", wantErr: false},
		{name: "production without override", env: "production", baseURL: "", wantErr: true},
		{name: "staging without override", env: "staging", baseURL: "", wantErr: true},
		{name: "production with override", env: "production", baseURL: "https://api.example.com", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Env.Env = tt.env
			cfg.API.BaseURL = tt.baseURL

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
