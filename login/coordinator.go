/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package login implements the wallet handshake: a fresh key is authorized by
// the user in the wallet, confirmed on chain and only then stored locally.
package login

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/xuperchain/near-shell/common/log"
	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/keystore"
	"github.com/xuperchain/near-shell/rpc"
)

// State of one handshake
type State int

// handshake states
const (
	StateStart State = iota
	StateKeyGenerated
	StateURLDispatched
	StateAwaitingUserInput
	StateVerifying
	StatePersisted
	StateRejected
	StateErrorReported
)

var stateNames = map[State]string{
	StateStart:             "Start",
	StateKeyGenerated:      "KeyGenerated",
	StateURLDispatched:     "URLDispatched",
	StateAwaitingUserInput: "AwaitingUserInput",
	StateVerifying:         "Verifying",
	StatePersisted:         "Persisted",
	StateRejected:          "Rejected",
	StateErrorReported:     "ErrorReported",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome is how a handshake ended
type Outcome int

// handshake outcomes
const (
	// OutcomeNotNeeded the network has no wallet, nothing was done
	OutcomeNotNeeded Outcome = iota
	// OutcomePersisted the key was confirmed and stored
	OutcomePersisted
	// OutcomeRejected the account does not carry the key
	OutcomeRejected
	// OutcomeErrorReported the check or the store failed, a message was printed
	OutcomeErrorReported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotNeeded:
		return "NotNeeded"
	case OutcomePersisted:
		return "Persisted"
	case OutcomeRejected:
		return "Rejected"
	case OutcomeErrorReported:
		return "ErrorReported"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// AccessKeyLister fetches the access keys of an account
type AccessKeyLister interface {
	ViewAccessKeyList(ctx context.Context, accountID string) (*rpc.AccessKeyList, error)
}

// Config of the network being logged into
type Config struct {
	NetworkID string
	NodeURL   string
	WalletURL string
}

// user facing messages
const (
	msgNotNeeded   = "Log in is not needed on this environment. Please use appropriate master account for shell operations."
	msgStep1       = "(Step 1) Please authorize NEAR Shell on at least one of your accounts then come back."
	msgStep2       = "(Step 2) Which account did you just authorize for use with NEAR Shell?  Enter it here"
	msgInvalidID   = "You need to provide a valid account ID to login. Please try logging in again."
	msgBrowserFail = "Could not open a browser, please visit the url above."
)

// Option customizes a Coordinator
type Option func(c *Coordinator)

// WithOpener sets the url opener, BrowserOpener by default
func WithOpener(opener Opener) Option {
	return func(c *Coordinator) {
		c.opener = opener
	}
}

// WithEnv sets the environment lookup, OSEnv by default
func WithEnv(env Env) Option {
	return func(c *Coordinator) {
		c.env = env
	}
}

// WithOutput sets where messages are printed, stdout by default
func WithOutput(out io.Writer) Option {
	return func(c *Coordinator) {
		c.out = out
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithKeyGenerator replaces the random key generator
func WithKeyGenerator(gen func() (*keypair.KeyPair, error)) Option {
	return func(c *Coordinator) {
		c.newKeyPair = gen
	}
}

// Coordinator runs one login handshake
type Coordinator struct {
	cfg         Config
	keys        AccessKeyLister
	store       keystore.KeyStore
	newPrompter PromptFactory
	opener      Opener
	env         Env
	out         io.Writer
	logger      log.Logger
	newKeyPair  func() (*keypair.KeyPair, error)
	state       State
}

// NewCoordinator new a login coordinator
func NewCoordinator(cfg Config, keys AccessKeyLister, store keystore.KeyStore, prompter PromptFactory, opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg:         cfg,
		keys:        keys,
		store:       store,
		newPrompter: prompter,
		opener:      BrowserOpener,
		env:         OSEnv,
		out:         os.Stdout,
		logger:      log.DefaultLogger,
		newKeyPair:  keypair.FromRandom,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the state the last Run stopped in
func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) transit(s State) {
	c.logger.Debug("login state", "from", c.state, "to", s, "network", c.cfg.NetworkID)
	c.state = s
}

// Run drives the handshake. Remote failures are reported to the user and end
// in an Outcome, an error is only returned when the handshake could not
// reach the user at all.
func (c *Coordinator) Run(ctx context.Context) (Outcome, error) {
	c.state = StateStart
	if c.cfg.WalletURL == "" {
		fmt.Fprintln(c.out, msgNotNeeded)
		return OutcomeNotNeeded, nil
	}

	kp, err := c.newKeyPair()
	if err != nil {
		return OutcomeErrorReported, fmt.Errorf("generate key: %w", err)
	}
	c.transit(StateKeyGenerated)

	authURL, err := AuthorizationURL(c.cfg.WalletURL, kp.PublicKey())
	if err != nil {
		return OutcomeErrorReported, err
	}
	c.dispatch(authURL)
	c.transit(StateURLDispatched)

	prompter, err := c.newPrompter()
	if err != nil {
		return OutcomeErrorReported, fmt.Errorf("open prompt: %w", err)
	}
	defer func() {
		if err := prompter.Close(); err != nil {
			c.logger.Warn("close prompt failed", "err", err)
		}
	}()

	c.transit(StateAwaitingUserInput)
	input, err := prompter.Prompt(msgStep2)
	if err != nil {
		return OutcomeErrorReported, fmt.Errorf("read account id: %w", err)
	}
	accountID := strings.TrimSpace(input)

	c.transit(StateVerifying)
	return c.verify(ctx, accountID, kp), nil
}

// dispatch shows the url or hands it to the browser
func (c *Coordinator) dispatch(authURL string) {
	fmt.Fprintln(c.out, color.New(color.Bold, color.FgYellow).Sprint(msgStep1))
	// 调试和 CI 环境下只打印，不打开浏览器
	if c.env.IsDebug() || c.env.IsCI() {
		fmt.Fprintln(c.out, authURL)
		return
	}
	if err := c.opener.Open(authURL); err != nil {
		c.logger.Warn("open browser failed", "err", err)
		fmt.Fprintln(c.out, authURL)
		fmt.Fprintln(c.out, msgBrowserFail)
	}
}

func (c *Coordinator) verify(ctx context.Context, accountID string, kp *keypair.KeyPair) Outcome {
	publicKey := kp.PublicKey().String()
	list, err := c.keys.ViewAccessKeyList(ctx, accountID)
	if err != nil {
		c.report(err, accountID)
		c.transit(StateErrorReported)
		return OutcomeErrorReported
	}

	bold := color.New(color.Bold).SprintFunc()
	short := ShortKey(publicKey)
	if !list.HasKey(publicKey) {
		fmt.Fprintf(c.out, "The account you provided has not %s [ %s ] Please try again.\n",
			color.New(color.Bold, color.FgRed).Sprint("authorized the expected key"), bold(short))
		c.transit(StateRejected)
		return OutcomeRejected
	}

	// 链上确认后才落盘
	if err := c.store.SetKey(c.cfg.NetworkID, accountID, kp); err != nil {
		fmt.Fprintln(c.out, err.Error())
		c.transit(StateErrorReported)
		return OutcomeErrorReported
	}
	fmt.Fprintf(c.out, "Logged in as [ %s ] with public key [ %s ] successfully\n", bold(accountID), bold(short))
	c.transit(StatePersisted)
	return OutcomePersisted
}

func (c *Coordinator) report(err error, accountID string) {
	c.logger.Debug("access key check failed", "account", accountID, "err", err)
	switch rpc.KindOf(err) {
	case rpc.KindInvalidAccountID:
		fmt.Fprintln(c.out, color.New(color.FgRed).Sprint(msgInvalidID))
	case rpc.KindAccountNotFound:
		fmt.Fprintf(c.out, "%s on the current network (%s not found on %s)\n",
			color.New(color.Bold, color.FgRed).Sprint("The account you provided does not exist"),
			color.New(color.Bold).Sprint(accountID), color.New(color.Bold).Sprint(c.cfg.NodeURL))
	default:
		fmt.Fprintln(c.out, err.Error())
	}
}
