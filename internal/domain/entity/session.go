package entity

// Session carries the credentials and region chosen for one invocation.
// It is passed explicitly to the Bedrock gateway constructor.
type Session struct {
	Profile         string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	AccountID       string
}

// HasStaticCredentials reports whether the user typed an access key pair.
func (s Session) HasStaticCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}
