package dto

import "github.com/campushub/ams-api/pkg/config"

// FirebaseClientConfig is the public blob browsers need to initialise the
// Firebase SDK. The apiKey is safe to expose; private keys never appear
// here.
type FirebaseClientConfig struct {
	APIKey            string `json:"apiKey"`
	AuthDomain        string `json:"authDomain"`
	ProjectID         string `json:"projectId"`
	StorageBucket     string `json:"storageBucket"`
	MessagingSenderID string `json:"messagingSenderId"`
	AppID             string `json:"appId"`
}

// FirebaseClientConfigFrom maps server configuration to the client blob.
func FirebaseClientConfigFrom(cfg config.FirebaseConfig) FirebaseClientConfig {
	return FirebaseClientConfig{
		APIKey:            cfg.APIKey,
		AuthDomain:        cfg.AuthDomain,
		ProjectID:         cfg.ProjectID,
		StorageBucket:     cfg.StorageBucket,
		MessagingSenderID: cfg.MessagingSenderID,
		AppID:             cfg.AppID,
	}
}
