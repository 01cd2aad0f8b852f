package config

// ServiceAccount holds the fields from a Google service-account JSON key
// needed to sign document download URLs.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}
