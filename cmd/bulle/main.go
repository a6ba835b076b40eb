// Command bulle is the conversational landing-page editor. It loads a site,
// then reads chat messages from stdin: plain text goes through the assistant
// (remote when configured, the deterministic local interpreter otherwise),
// and ":"-prefixed commands drive the session itself.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kiwi570/bulle/common/environment"
	"github.com/Kiwi570/bulle/common/retry"
	"github.com/Kiwi570/bulle/common/trace"
	"github.com/Kiwi570/bulle/common/version"
	"github.com/Kiwi570/bulle/internal/bulle/actions"
	"github.com/Kiwi570/bulle/internal/bulle/assistant"
	"github.com/Kiwi570/bulle/internal/bulle/export"
	"github.com/Kiwi570/bulle/internal/bulle/interpreter"
	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/store"
	"github.com/Kiwi570/bulle/internal/bulle/theme"
)

type config struct {
	dbPath    string
	siteName  string
	exportDir string
	apiKey    string
	baseURL   string
	model     string
	rateLimit int
}

func loadConfig() config {
	apiKey, _ := environment.String("OPENAI_API_KEY")
	return config{
		dbPath:    environment.StringOr("BULLE_DB_PATH", "./bulle.db"),
		siteName:  environment.StringOr("BULLE_SITE_NAME", "Mon Super Site"),
		exportDir: environment.StringOr("BULLE_EXPORT_DIR", "./export"),
		apiKey:    apiKey,
		baseURL:   environment.StringOr("BULLE_ASSISTANT_BASE_URL", ""),
		model:     environment.StringOr("BULLE_ASSISTANT_MODEL", ""),
		rateLimit: environment.IntOr("BULLE_ASSISTANT_RATE_PER_MIN", assistant.DefaultRateLimit),
	}
}

func main() {
	fmt.Printf("Bulle Editor 🫧\n")
	fmt.Printf("Version: %s\n\n", version.Info())

	cfg := loadConfig()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	app, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.close()

	app.run()
}

type app struct {
	cfg     config
	db      *store.DB
	store   *store.Store
	local   *interpreter.Processor
	runner  *actions.Runner
	remote  assistant.Provider
	limiter *assistant.RateLimiter
	budget  *assistant.TokenBudget
	ctx     interpreter.Context
	history []assistant.HistoryMessage
	session string
}

func newApp(cfg config) (*app, error) {
	db, err := store.OpenDB(cfg.dbPath)
	if err != nil {
		return nil, err
	}

	s, err := db.LoadSite(context.Background(), cfg.siteName)
	if err != nil {
		if !errors.Is(err, store.ErrSiteNotFound) {
			db.Close()
			return nil, err
		}
		s = nil // fresh site
	}

	st := store.New(store.Config{Site: s})
	if s == nil {
		st.Site().Name = cfg.siteName
	}

	a := &app{
		cfg:     cfg,
		db:      db,
		store:   st,
		local:   interpreter.New(st, interpreter.Config{}),
		runner:  actions.NewRunner(st, nil),
		ctx:     interpreter.NewContext("hero"),
		session: trace.GenerateID(),
	}

	if cfg.apiKey != "" {
		// Settings fill in whatever the environment left unset, so the
		// endpoint and model can be switched without restarting a shell.
		settings := store.NewSettings(db)
		if a.cfg.baseURL == "" {
			a.cfg.baseURL, _ = settings.Get(context.Background(), store.SettingAssistantBaseURL)
		}
		if a.cfg.model == "" {
			a.cfg.model, _ = settings.Get(context.Background(), store.SettingAssistantModel)
		}
		if _, ok := environment.String("BULLE_ASSISTANT_RATE_PER_MIN"); !ok {
			if v, err := settings.Get(context.Background(), store.SettingAssistantRate); err == nil {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					a.cfg.rateLimit = n
				}
			}
		}
		a.remote = assistant.NewOpenAI(assistant.Config{
			APIKey:  a.cfg.apiKey,
			BaseURL: a.cfg.baseURL,
			Model:   a.cfg.model,
		})
		a.limiter = assistant.NewRateLimiter(a.cfg.rateLimit, time.Minute)
		a.budget = assistant.NewTokenBudget(0)
		fmt.Println("🤖 Assistant distant activé.")
	} else {
		fmt.Println("💡 Mode local (définis OPENAI_API_KEY pour l'assistant distant).")
	}

	return a, nil
}

func (a *app) close() {
	if err := a.db.SaveSite(context.Background(), a.store.Site()); err != nil {
		slog.Error("save site on exit", "error", err)
	}
	a.db.Close()
}

func (a *app) run() {
	fmt.Printf("📍 Section active : %s — tape :help pour les commandes.\n\n", a.ctx.ActiveSection)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := a.command(line); quit {
				return
			}
			continue
		}
		a.turn(line)
	}
}

// command handles the ":" session commands. Returns true on quit.
func (a *app) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":q", ":quit", ":exit":
		fmt.Println("👋 À bientôt !")
		return true

	case ":help":
		fmt.Println(`Commandes :
  :sections          liste les sections
  :section <id>      change la section active
  :themes            liste les thèmes
  :undo / :redo      annule / rétablit
  :save              sauvegarde le site
  :export [dossier]  exporte en HTML/CSS
  :quit              quitte (sauvegarde automatique)`)

	case ":sections":
		for _, id := range a.store.Site().SectionsOrder {
			marker := " "
			if id == a.ctx.ActiveSection {
				marker = "▸"
			}
			fmt.Printf("%s %s\n", marker, id)
		}

	case ":section":
		if len(fields) < 2 {
			fmt.Println("Usage : :section <id>")
			break
		}
		a.navigate(fields[1])

	case ":themes":
		for _, t := range theme.All() {
			marker := " "
			if t.ID == a.store.Site().Theme {
				marker = "▸"
			}
			fmt.Printf("%s %s %s — %s\n", marker, t.Emoji, t.ID, t.Description)
		}

	case ":undo":
		if a.store.Undo() {
			fmt.Println("↩️ Annulé !")
		} else {
			fmt.Println("🤷 Rien à annuler !")
		}

	case ":redo":
		if a.store.Redo() {
			fmt.Println("↪️ Rétabli !")
		} else {
			fmt.Println("🤷 Rien à rétablir !")
		}

	case ":save":
		if err := a.db.SaveSite(context.Background(), a.store.Site()); err != nil {
			fmt.Printf("❌ Sauvegarde impossible : %v\n", err)
		} else {
			fmt.Println("💾 Sauvegardé !")
		}

	case ":export":
		if len(fields) > 1 {
			a.cfg.exportDir = fields[1]
		}
		a.export()

	default:
		fmt.Printf("🤔 Commande inconnue : %s (:help pour la liste)\n", fields[0])
	}
	return false
}

// turn routes one chat message: remote assistant when available and within
// quota, local interpreter otherwise.
func (a *app) turn(message string) {
	ctx := trace.WithTraceID(context.Background(), trace.GenerateID())

	if a.remote != nil && a.limiter.Allow(a.session) && a.budget.Allow(a.session) {
		if a.remoteTurn(ctx, message) {
			return
		}
		// Remote failed: fall through to the local interpreter.
	}
	a.localTurn(ctx, message)
}

func (a *app) remoteTurn(ctx context.Context, message string) bool {
	var resp *assistant.Response
	err := retry.Do(ctx, retry.Config{MaxAttempts: 2, InitialDelay: time.Second,
		ShouldRetry: func(err error) bool { return !errors.Is(err, assistant.ErrRateLimit) },
	}, func() error {
		var chatErr error
		resp, chatErr = a.remote.Chat(ctx, assistant.Request{
			SessionID: a.session,
			Message:   message,
			History:   a.history,
			Site:      a.store.Site(),
			SectionID: a.ctx.ActiveSection,
		})
		return chatErr
	})
	if err != nil {
		slog.Warn("remote assistant failed, using local mode", "error", err)
		a.logTurn(ctx, message, store.SourceRemote, "error", err.Error())
		return false
	}
	a.budget.RecordUsage(a.session, resp.TokensUsed)

	result := a.runner.Run(resp.Reply.Actions)
	fmt.Println(resp.Reply.Message)
	for _, runErr := range result.Errors {
		slog.Warn("assistant action rejected", "error", runErr)
	}
	printSuggestions(resp.Reply.Suggestions)

	a.history = append(a.history,
		assistant.HistoryMessage{Role: "user", Content: message},
		assistant.HistoryMessage{Role: "assistant", Content: resp.Reply.Message},
	)
	if len(a.history) > 20 {
		a.history = a.history[len(a.history)-20:]
	}

	a.logTurn(ctx, message, store.SourceRemote, "ok", "")
	return true
}

func (a *app) localTurn(ctx context.Context, message string) {
	res := a.local.ProcessTurn(message, a.ctx)
	a.ctx = res.Context

	if !res.SilentPreview {
		fmt.Println(res.Message)
		if res.Hint != "" {
			fmt.Println(res.Hint)
		}
		printSuggestions(res.Suggestions)
	}
	if res.Toast != "" {
		fmt.Printf("  %s\n", res.Toast)
	}

	switch res.Action {
	case interpreter.ActionExport:
		a.export()
	case interpreter.ActionNavigate:
		a.navigate(res.NavigateTo)
	}

	result := "ok"
	if !res.Success {
		result = "unrecognized"
	}
	a.logTurn(ctx, message, store.SourceLocal, result, "")
}

func (a *app) navigate(sectionID string) {
	if a.store.GetSection(sectionID) == nil {
		fmt.Printf("🤔 Section inconnue : %s\n", sectionID)
		return
	}
	a.ctx = interpreter.NewContext(sectionID)
	section := a.store.GetSection(sectionID)
	if cfg, ok := lexicon.SectionFor(section.Type); ok {
		fmt.Printf("📍 %s %s\n", cfg.Emoji, cfg.Label)
	}
	if tip := interpreter.ProactiveTip(section); tip != "" {
		fmt.Println(tip)
	}
}

func (a *app) export() {
	if err := export.Export(a.store.Site(), a.cfg.exportDir); err != nil {
		fmt.Printf("❌ Export impossible : %v\n", err)
		return
	}
	fmt.Printf("📤 Exporté dans %s/\n", a.cfg.exportDir)
}

func (a *app) logTurn(ctx context.Context, message, source, result, errMsg string) {
	err := a.db.WriteTurn(ctx, trace.FromContext(ctx), a.store.Site().Name,
		a.ctx.ActiveSection, message, source, result, errMsg)
	if err != nil {
		slog.Error("write turn log", "error", err)
	}
}

func printSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Printf("  💡 %s\n", strings.Join(suggestions, " · "))
}
