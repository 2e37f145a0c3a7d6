package aifml

//go:generate go tool mockgen -destination=mock_session.go -package=aifml . Session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"i4.energy/across/fmlgw/modem"
)

// Session is the modem's single-socket abstraction. *modem.Modem satisfies it.
type Session interface {
	// OpenSession starts a TCP session to host:port.
	OpenSession(ctx context.Context, host string, port int) error
	// SendPayload writes body over the session and returns the raw reply.
	SendPayload(ctx context.Context, body string) (string, error)
}

var _ Session = (*modem.Modem)(nil)

// Config holds the service endpoints, credentials and the bucket table.
type Config struct {
	Host       string
	Port       int
	SignInPath string
	FetchPath  string
	BasicAuth  string
	Username   string
	Password   string

	// Buckets are evaluated in order on every successful poll.
	Buckets []Bucket
	// DisplayDwell is how long a fresh result is held before its actions
	// fire. Defaults to 3s.
	DisplayDwell time.Duration
	// Sleep is the delay primitive. Defaults to modem.Sleep.
	Sleep modem.SleepFunc
	// OnResult, when set, receives every poll result.
	OnResult func(Result)
	Logger   *slog.Logger
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.SignInPath == "" {
		c.SignInPath = DefaultSignInPath
	}
	if c.FetchPath == "" {
		c.FetchPath = DefaultFetchPath
	}
	if c.BasicAuth == "" {
		c.BasicAuth = DefaultBasicAuth
	}
	if c.DisplayDwell == 0 {
		c.DisplayDwell = 3 * time.Second
	}
	if c.Sleep == nil {
		c.Sleep = modem.Sleep
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Result is the outcome of one poll cycle.
type Result struct {
	At    time.Time
	Data  *FmlData
	Fired []string
	Err   error
}

// Client signs in to the AI-FML service and polls it for inference results
// over a modem Session. It is not safe for concurrent use.
type Client struct {
	session Session
	config  Config
	token   string
	logger  *slog.Logger
}

func NewClient(session Session, config Config) (*Client, error) {
	config.setDefaults()
	if err := ValidateBuckets(config.Buckets); err != nil {
		return nil, err
	}
	return &Client{
		session: session,
		config:  config,
		logger:  config.Logger,
	}, nil
}

// Token returns the access token, empty before a successful SignIn.
func (c *Client) Token() string {
	return c.token
}

// exchange opens a session, sends request and returns the raw reply.
func (c *Client) exchange(ctx context.Context, request string) (string, error) {
	if err := c.session.OpenSession(ctx, c.config.Host, c.config.Port); err != nil {
		return "", err
	}
	return c.session.SendPayload(ctx, request)
}

// SignIn posts the credentials and keeps the returned access token for
// every later fetch. The token is never refreshed.
func (c *Client) SignIn(ctx context.Context) error {
	request := SignInRequest(c.config.Host, c.config.SignInPath, c.config.BasicAuth, c.config.Username, c.config.Password)
	raw, err := c.exchange(ctx, request)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	token, err := ParseSignIn(raw)
	if err != nil {
		c.logger.Debug("Sign-in reply", "reply", raw)
		return fmt.Errorf("sign in: %w", err)
	}
	c.token = token
	signIns.Inc()
	c.logger.Info("Signed in", "account", c.config.Username)
	return nil
}

// Fetch requests the latest fmldata.
func (c *Client) Fetch(ctx context.Context) (*FmlData, error) {
	if c.token == "" {
		return nil, ErrNotSignedIn
	}

	raw, err := c.exchange(ctx, FetchRequest(c.config.Host, c.config.FetchPath, c.token))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	data, err := ParseFetch(raw)
	if err != nil {
		c.logger.Debug("Fetch reply", "reply", raw)
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return data, nil
}

// Poll runs one cycle: fetch, hold the result for DisplayDwell, then fire
// the actions of every bucket containing the output value. Nothing fires
// when the fetch fails.
func (c *Client) Poll(ctx context.Context) Result {
	res := c.poll(ctx)
	pollResult(resultLabel(res.Err))
	if c.config.OnResult != nil {
		c.config.OnResult(res)
	}
	return res
}

func (c *Client) poll(ctx context.Context) Result {
	data, err := c.Fetch(ctx)
	if err != nil {
		return Result{At: time.Now(), Err: err}
	}

	c.logger.Info("Inference result",
		"summary", data.Summary(),
		"output", data.Output.Value,
		"datetimestamp", data.DateTimestamp,
	)
	if err := c.config.Sleep(ctx, c.config.DisplayDwell); err != nil {
		return Result{At: time.Now(), Data: data, Err: err}
	}

	outputValue.Update(data.Output.Value)
	fired := Dispatch(data.Output.Value, c.config.Buckets)
	c.logger.Debug("Dispatched", "output", data.Output.Value, "fired", fired)
	return Result{At: time.Now(), Data: data, Fired: fired}
}

// Run polls every interval until ctx is done. Failures are logged and the
// next cycle starts after the interval; there is no reconnect or re-sign-in.
func (c *Client) Run(ctx context.Context, interval time.Duration) error {
	for {
		res := c.Poll(ctx)
		switch {
		case res.Err == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		case IsRecoverable(res.Err):
			c.logger.Warn("Poll cycle without result", "error", res.Err)
		default:
			c.logger.Error("Poll cycle abandoned", "error", res.Err)
		}

		if err := c.config.Sleep(ctx, interval); err != nil {
			return err
		}
	}
}
