package ports

// Credentials carried explicitly from the request boundary to outbound adapters.
// An empty BearerToken means the call is made anonymously.
type Credentials struct {
	BearerToken string
}

func (c Credentials) HasToken() bool { return c.BearerToken != "" }
