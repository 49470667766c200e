package dto

// FederatedLoginResponse keeps the wire contract of the legacy federated
// endpoints: {success, message, redirectUrl?}.
type FederatedLoginResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Token       string `json:"token,omitempty"`
}
