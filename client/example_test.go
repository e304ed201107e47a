package client_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonwraymond/apiguard/client"
	"github.com/jonwraymond/apiguard/ratelimit"
)

// stubTransport returns a canned response for documentation examples.
type stubTransport struct{}

func (stubTransport) Send(ctx context.Context, req *client.Request) (*client.Response, error) {
	return &client.Response{
		Status: 200,
		Header: http.Header{},
		Body:   []byte(`{"login":"octocat"}`),
	}, nil
}

func ExampleNew() {
	c, err := client.New(client.Config{
		Transport: stubTransport{},
		Limiter:   ratelimit.NewLimiter(ratelimit.Config{}),
	})
	if err != nil {
		fmt.Println("setup failed:", err)
		return
	}

	resp, err := c.Do(context.Background(), "octocat", &client.Request{
		Method:  "GET",
		URL:     "https://api.github.com/user",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}

	fmt.Println(resp.Status, string(resp.Body))
	// Output:
	// 200 {"login":"octocat"}
}

func ExampleClient_DoJSON() {
	c, _ := client.New(client.Config{Transport: stubTransport{}})

	var user struct {
		Login string `json:"login"`
	}
	if _, err := c.DoJSON(context.Background(), "octocat", &client.Request{
		Method: "GET",
		URL:    "https://api.github.com/user",
	}, &user); err != nil {
		fmt.Println("request failed:", err)
		return
	}

	fmt.Println(user.Login)
	// Output:
	// octocat
}
