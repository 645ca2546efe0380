package http

import (
	"net"
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type clientSettings struct {
	timeouts            Timeouts
	maxIdleConns        int
	maxIdleConnsPerHost int
	maxResponseSize     int64
	layers              []TransportFunc
}

func defaultSettings() *clientSettings {
	return &clientSettings{
		timeouts: Timeouts{
			Dial:           10 * time.Second,
			KeepAlive:      90 * time.Second,
			Request:        30 * time.Second,
			ResponseHeader: 30 * time.Second,
			IdleConn:       90 * time.Second,
			TLSHandshake:   10 * time.Second,
		},
		maxIdleConns:        100,
		maxIdleConnsPerHost: 10,
		maxResponseSize:     10 << 20,
	}
}

func (s *clientSettings) client() *http.Client {
	dialer := &net.Dialer{
		Timeout:   s.timeouts.Dial,
		KeepAlive: s.timeouts.KeepAlive,
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          s.maxIdleConns,
		MaxIdleConnsPerHost:   s.maxIdleConnsPerHost,
		TLSHandshakeTimeout:   s.timeouts.TLSHandshake,
		ResponseHeaderTimeout: s.timeouts.ResponseHeader,
		IdleConnTimeout:       s.timeouts.IdleConn,
	}
	for _, wrap := range s.layers {
		rt = wrap(rt)
	}

	return &http.Client{
		Timeout:   s.timeouts.Request,
		Transport: rt,
	}
}
