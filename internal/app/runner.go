package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/rahkaran-client/internal/config"
	"github.com/samvad-hq/rahkaran-client/internal/logger"
	"github.com/samvad-hq/rahkaran-client/internal/storage"
	"github.com/samvad-hq/rahkaran-client/pkg/loginsvc"
	"github.com/samvad-hq/rahkaran-client/pkg/publishers"
	"github.com/samvad-hq/rahkaran-client/pkg/rahkaran"
)

// Runner builds a Rahkaran client from config and executes one named operation
// per Run call. Results are written as JSON and optionally fanned out to publishers.
type Runner struct {
	cfg        *config.Config
	client     *rahkaran.Client
	fanout     *publishers.Fanout
	store      storage.Store
	sessionKey string
	fromStore  bool
	saved      bool
	log        logger.Logger
	out        io.Writer
}

// RunnerOption customises a Runner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	out        io.Writer
	clientOpts []rahkaran.Option
}

// WithOutput redirects operation results; stdout is used otherwise.
func WithOutput(w io.Writer) RunnerOption {
	return func(o *runnerOptions) {
		if w != nil {
			o.out = w
		}
	}
}

// WithClientOptions appends options applied when the Rahkaran client is built.
func WithClientOptions(opts ...rahkaran.Option) RunnerOption {
	return func(o *runnerOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// NewRunner wires storage, publishers and an authenticated client from config.
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...RunnerOption) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ro := runnerOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&ro)
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{SessionTTL: cfg.SessionTTL})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                cfg.StorageType,
		"path":                cfg.BBoltPath,
		"session_ttl_seconds": int(cfg.SessionTTL.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	r := &Runner{
		cfg:        cfg,
		fanout:     fanout,
		store:      store,
		sessionKey: storage.SessionKey(cfg.BaseURL, cfg.Username),
		log:        log,
		out:        ro.out,
	}
	if err := r.connect(ctx, ro.clientOpts); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		return publishers.NewFanout(), nil
	}
	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	fanout, err := publishers.DefaultRegistry().BuildFanout(ctx, enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]any, 0, len(enabled))
	for _, p := range enabled {
		summaries = append(summaries, map[string]any{"id": p.ID, "type": p.Type, "operations": p.Operations})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return fanout, nil
}

// connect picks the credential source: configured cookies, then a stored
// session, then a login through the login service.
func (r *Runner) connect(ctx context.Context, extra []rahkaran.Option) error {
	opts := []rahkaran.Option{
		rahkaran.WithTimeout(r.cfg.HTTPTimeout),
		rahkaran.WithLogger(r.log),
	}
	if r.cfg.UserAgent != "" {
		opts = append(opts, rahkaran.WithUserAgent(r.cfg.UserAgent))
	}
	if r.cfg.EndpointsFile != "" {
		eps, err := rahkaran.LoadEndpoints(r.cfg.EndpointsFile)
		if err != nil {
			return fmt.Errorf("load endpoints: %w", err)
		}
		opts = append(opts, rahkaran.WithEndpoints(eps))
	}

	creds := rahkaran.Credentials{Cookies: r.cfg.Cookies}
	if len(creds.Cookies) == 0 {
		stored, ok, err := r.store.LoadSession(r.sessionKey)
		if err != nil {
			r.log.WarnObj("session lookup failed", "error", err.Error())
		}
		if ok {
			creds.Cookies = stored
			r.fromStore = true
			r.log.InfoObj("reusing stored session", "session", map[string]any{
				"key":     r.sessionKey,
				"cookies": logger.CookieNames(stored),
			})
		} else {
			creds.Username = r.cfg.Username
			creds.Password = r.cfg.Password
			opts = append(opts, rahkaran.WithAuthenticator(loginsvc.New(r.cfg.LoginServiceURL, r.cfg.HTTPTimeout)))
		}
	}
	opts = append(opts, extra...)

	client, err := rahkaran.New(ctx, r.cfg.BaseURL, creds, opts...)
	if err != nil {
		return err
	}
	r.client = client

	if creds.Username != "" {
		if err := r.store.SaveSession(r.sessionKey, client.Cookies()); err != nil {
			r.log.WarnObj("session save failed", "error", err.Error())
		} else {
			r.saved = true
		}
	}
	return nil
}

// Client exposes the underlying Rahkaran client.
func (r *Runner) Client() *rahkaran.Client { return r.client }

// Run executes the named operation and prints its JSON result. Successful and
// failed executions are both reported to the configured publishers.
func (r *Runner) Run(ctx context.Context, operation string, args []string) (any, error) {
	if r == nil || r.client == nil {
		return nil, fmt.Errorf("runner is not initialized")
	}
	cmd, ok := commands[operation]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", operation)
	}
	nums, err := parseArgs(operation, cmd, args)
	if err != nil {
		return nil, err
	}

	result, err := cmd.run(ctx, r.client, nums, args)
	r.publish(ctx, publishers.NewEvent(operation, r.client.BaseURL(), args, result, err))
	if err != nil {
		r.dropRejectedSession(err)
		r.log.ErrorObj("operation failed", "operation_error", map[string]any{
			"operation": operation,
			"args":      args,
			"error":     err.Error(),
		})
		return nil, err
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("write result: %w", err)
	}
	return result, nil
}

// publish never fails the operation; sink errors are logged.
func (r *Runner) publish(ctx context.Context, evt publishers.Event) {
	if r.fanout.Size() == 0 {
		return
	}
	delivered, err := r.fanout.Publish(ctx, evt)
	if err != nil {
		r.log.WarnObj("publish failed", "publish_error", map[string]any{
			"operation": evt.Operation,
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
}

// dropRejectedSession forgets a persisted session the server no longer
// accepts, whether it was loaded or saved by this run, so the next run logs
// in again.
func (r *Runner) dropRejectedSession(err error) {
	if !r.fromStore && !r.saved {
		return
	}
	var se *rahkaran.ServerError
	if errors.As(err, &se) && se.Unauthorized() {
		if derr := r.store.DeleteSession(r.sessionKey); derr != nil {
			r.log.WarnObj("session delete failed", "error", derr.Error())
			return
		}
		r.log.InfoObj("stored session rejected; removed", "session_key", r.sessionKey)
	}
}

// Close releases publishers and the session store.
func (r *Runner) Close() error {
	if r == nil {
		return nil
	}
	return errors.Join(r.fanout.Close(), r.store.Close())
}
