// Package cli implements the interactive terminal front end.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gigmarket/config"
	"gigmarket/internal/delivery"
	"gigmarket/internal/domain/entity"
	"gigmarket/internal/infra/rest"
	"gigmarket/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RunnerParams holds dependencies for the terminal runner, injected by Fx.
type RunnerParams struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Session  usecase.SessionUsecase
	Presence usecase.PresenceUsecase
	Chat     usecase.ChatUsecase
	API      *rest.Client
}

type runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	session  usecase.SessionUsecase
	presence usecase.PresenceUsecase
	chat     usecase.ChatUsecase
	api      *rest.Client

	in  io.Reader
	out io.Writer

	cancel context.CancelFunc
}

// NewRunner is the constructor for the terminal runner.
func NewRunner(params RunnerParams) (delivery.Delivery, error) {
	r := &runner{
		cfg:      params.Config,
		logger:   params.Logger,
		session:  params.Session,
		presence: params.Presence,
		chat:     params.Chat,
		api:      params.API,
		in:       os.Stdin,
		out:      os.Stdout,
	}

	params.Append(fx.Hook{
		OnStop: r.stop,
	})

	return r, nil
}

// Serve bootstraps the session, binds the realtime channel to the identity
// stream, and runs the command loop until stdin or the context ends.
func (r *runner) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	defer cancel()

	r.logger.Info("Starting terminal client",
		slog.String("env", r.cfg.Env.Env), slog.String("api", r.api.BaseURL()))

	if err := r.session.Bootstrap(ctx); err != nil {
		return errors.Wrap(err, "bootstrap session")
	}

	// Every identity change, including the bootstrap result, rebinds the
	// realtime channel before anything consumes it.
	identities := r.session.Watch()
	if snapshot := r.session.Current(); snapshot.User != nil {
		r.presence.SetIdentity(ctx, snapshot.User.ID)
		fmt.Fprintf(r.out, "signed in as %s (%s, %s)\n",
			snapshot.User.UserName, snapshot.User.Role, snapshot.Source)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case userID := <-identities:
				r.presence.SetIdentity(ctx, userID)
			}
		}
	}()

	go r.chat.Run(ctx)
	go r.printIncoming(ctx)

	r.commandLoop(ctx)

	return nil
}

func (r *runner) stop(context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}
	r.logger.Info("Shutting down terminal client")

	return errors.WithStack(r.presence.Close())
}

func (r *runner) printIncoming(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.chat.Incoming():
			fmt.Fprintf(r.out, "\n[%s] %s\n> ", msg.SenderID, msg.Body)
		}
	}
}

func (r *runner) commandLoop(ctx context.Context) {
	scanner := bufio.NewScanner(r.in)
	fmt.Fprint(r.out, "gigmarket client, type 'help' for commands\n> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(r.out, "> ")

			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := r.dispatch(ctx, line); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		fmt.Fprint(r.out, "> ")
	}
}

//nolint:cyclop // flat command table, one case per verb
func (r *runner) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	verb, args := fields[0], fields[1:]

	switch verb {
	case "help":
		r.printHelp()

		return nil
	case "signup":
		return r.signup(ctx, args)
	case "login":
		return r.login(ctx, args)
	case "logout":
		return r.session.Logout(ctx)
	case "whoami":
		return r.whoami()
	case "refresh":
		return r.session.RefreshUser(ctx)
	case "reconnect":
		r.presence.Reconnect(ctx)

		return nil
	case "online":
		fmt.Fprintf(r.out, "state=%s online=%v\n", r.presence.State(), r.presence.OnlineUsers())

		return nil
	case "send":
		return r.send(ctx, args)
	case "history":
		return r.history(ctx, args)
	case "projects":
		return r.projects(ctx)
	case "myprojects":
		return r.myProjects(ctx)
	case "post":
		return r.postProject(ctx, args)
	case "propose":
		return r.propose(ctx, args)
	case "proposals":
		return r.proposals(ctx)
	case "wallet":
		return r.wallet(ctx)
	case "deposit":
		return r.deposit(ctx, args)
	case "notifications":
		return r.notifications(ctx)
	case "disputes":
		return r.disputes(ctx)
	default:
		return errors.Errorf("unknown command %q", verb)
	}
}

func (r *runner) printHelp() {
	fmt.Fprint(r.out, `commands:
  signup <name> <email> <password> <client|freelancer>
  login <email> <password>
  logout | whoami | refresh | reconnect | online
  send <userId> <message...>
  history <userId>
  projects | myprojects
  post <budget> <categoryId> <title...>
  propose <projectId> <bid> <cover...>
  proposals
  wallet | deposit <amount>
  notifications | disputes
  quit
`)
}

// signupRoles are the roles an account can self-register as; admin accounts
// are provisioned server-side.
var signupRoles = entity.Roles{entity.RoleClient, entity.RoleFreelancer}

func (r *runner) signup(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: signup <name> <email> <password> <client|freelancer>")
	}
	role := entity.Role(args[3])
	if !signupRoles.Contains(role) {
		return errors.Errorf("role must be one of %v", signupRoles)
	}

	return r.session.Signup(ctx, usecase.SignupInput{
		UserName: args[0],
		Email:    args[1],
		Password: args[2],
		Role:     role,
	})
}

func (r *runner) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}

	return r.session.Login(ctx, usecase.LoginInput{Email: args[0], Password: args[1]})
}

func (r *runner) whoami() error {
	snapshot := r.session.Current()
	if snapshot.User == nil {
		fmt.Fprintln(r.out, "not signed in")

		return nil
	}
	fmt.Fprintf(r.out, "%s <%s> role=%s verified=%t (%s)\n",
		snapshot.User.UserName, snapshot.User.Email, snapshot.User.Role,
		snapshot.User.IsVerified, snapshot.Source)

	return nil
}

func (r *runner) send(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: send <userId> <message>")
	}
	msg, err := r.chat.Send(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "sent %s\n", msg.ClientID)

	return nil
}

func (r *runner) history(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: history <userId>")
	}
	messages, err := r.chat.History(ctx, args[0])
	if err != nil {
		return err
	}
	for _, m := range messages {
		fmt.Fprintf(r.out, "%s [%s] %s\n", m.SentAt.Format("15:04"), m.SenderID, m.Body)
	}

	return r.chat.MarkRead(ctx, args[0])
}

func (r *runner) projects(ctx context.Context) error {
	projects, err := r.api.ListProjects(ctx, "")
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Fprintf(r.out, "%s  %-10s  $%.2f  %s\n", p.ID, p.Status, p.Budget, p.Title)
	}

	return nil
}

func (r *runner) myProjects(ctx context.Context) error {
	projects, err := r.api.MyProjects(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Fprintf(r.out, "%s  %-10s  $%.2f  %s\n", p.ID, p.Status, p.Budget, p.Title)
	}

	return nil
}

func (r *runner) postProject(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: post <budget> <categoryId> <title>")
	}
	budget, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errors.Wrap(err, "parse budget")
	}
	project, err := r.api.CreateProject(ctx, rest.CreateProjectInput{
		Title:       strings.Join(args[2:], " "),
		Description: strings.Join(args[2:], " "),
		CategoryID:  args[1],
		Budget:      budget,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "posted %s\n", project.ID)

	return nil
}

func (r *runner) propose(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: propose <projectId> <bid> <cover letter>")
	}
	bid, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.Wrap(err, "parse bid")
	}
	proposal, err := r.api.SubmitProposal(ctx, rest.SubmitProposalInput{
		ProjectID:   args[0],
		CoverLetter: strings.Join(args[2:], " "),
		BidAmount:   bid,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "proposal %s submitted\n", proposal.ID)

	return nil
}

func (r *runner) proposals(ctx context.Context) error {
	proposals, err := r.api.MyProposals(ctx)
	if err != nil {
		return err
	}
	for _, p := range proposals {
		fmt.Fprintf(r.out, "%s  project=%s  $%.2f  %s\n", p.ID, p.ProjectID, p.BidAmount, p.Status)
	}

	return nil
}

func (r *runner) wallet(ctx context.Context) error {
	wallet, err := r.api.Wallet(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "balance=%.2f escrowed=%.2f %s\n", wallet.Balance, wallet.Escrowed, wallet.Currency)

	return nil
}

func (r *runner) deposit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: deposit <amount>")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errors.Wrap(err, "parse amount")
	}
	tx, err := r.api.Deposit(ctx, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "transaction %s recorded\n", tx.ID)

	return nil
}

func (r *runner) notifications(ctx context.Context) error {
	notifications, err := r.api.Notifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %s  %s\n", marker, n.ID, n.Body)
	}

	return nil
}

func (r *runner) disputes(ctx context.Context) error {
	disputes, err := r.api.MyDisputes(ctx)
	if err != nil {
		return err
	}
	for _, d := range disputes {
		fmt.Fprintf(r.out, "%s  project=%s  %s  %s\n", d.ID, d.ProjectID, d.Status, d.Reason)
	}

	return nil
}
