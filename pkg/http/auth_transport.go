package http

import "net/http"

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+t.token)
	}

	return t.transport.RoundTrip(reqCopy)
}

func WithAuthToken(token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			token:     token,
			transport: rt,
		}
	})
}

// apiKeyTransport passes the key as a query parameter, the way
// Google Cloud and OpenWeather expect it.
type apiKeyTransport struct {
	param     string
	key       string
	transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	q := reqCopy.URL.Query()
	q.Set(t.param, t.key)
	reqCopy.URL.RawQuery = q.Encode()

	return t.transport.RoundTrip(reqCopy)
}

func WithAPIKeyQuery(param, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			param:     param,
			key:       key,
			transport: rt,
		}
	})
}
