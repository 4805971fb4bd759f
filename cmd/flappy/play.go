package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagConfig  string
	flagAssets  []string
	flagGUI     bool
	flagScale   float64
	flagNoAudio bool
	flagDebug   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. Without a mode, a menu lets you pick one and returns
after each round.

Controls:
  Space/Up/W   - Flap (start, retry)
  P/Esc        - Pause
  R            - Restart (after game over)
  D            - Debug overlay
  M            - Mute
  +/-          - Volume
  B            - Back to menu (paused or game over)
  Q/Ctrl+C     - Quit

Examples:
  flappy play
  flappy play practice
  flappy play flappy --gui --scale 1.5
  flappy play flappy --assets ./my-sprites.yaml
  flappy play flappy --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringSliceVar(&flagAssets, "assets", nil, "Extra asset catalog YAML files (later files win)")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Open a desktop window instead of using the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale for --gui")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the debug overlay")
}

// session holds the collaborators shared by every round of one process.
type session struct {
	log   *log.Logger
	cfg   config.FlappyConfig
	env   core.Env
	store *storage.Store
	prefs *storage.PrefsStore
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available modes.")
			os.Exit(1)
		}
	}

	logger, closeLog := newLogger(!flagGUI)
	defer closeLog()

	s := newSession(logger)
	defer s.close()

	var err error
	switch {
	case flagGUI:
		if gameID == "" {
			gameID = "flappy"
		}
		err = s.playWindow(gameID)
	case gameID == "":
		err = s.menuLoop()
	default:
		_, err = s.playTerminal(gameID)
	}

	if err != nil {
		s.close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// newSession loads config, assets, audio, preferences and the store.
// Assets load in the background; the game shows its loading screen until
// they are ready.
func newSession(logger *log.Logger) *session {
	cfg := loadGameConfig(flagConfig, logger)

	catalog := assets.NewCatalog(logger)
	var sink core.AudioSink = core.NopAudio{}
	var beepSink *audio.Sink
	if !flagNoAudio {
		beepSink = audio.NewSink(catalog, logger)
		if err := beepSink.Init(); err != nil {
			beepSink = nil
		} else {
			sink = beepSink
		}
	}

	go func() {
		if err := catalog.Load(flagAssets...); err != nil {
			return
		}
		if beepSink != nil {
			if missing := beepSink.Prepare(assets.Required...); len(missing) > 0 {
				logger.Debug("no tone for cues", "names", missing)
			}
		}
	}()

	prefs := storage.OpenPrefs("flappy", logger)
	return &session{
		log:   logger,
		cfg:   cfg,
		env:   core.Env{Log: logger, Assets: catalog, Audio: sink},
		store: openStore(logger),
		prefs: prefs,
	}
}

func (s *session) close() {
	if sink, ok := s.env.Audio.(*audio.Sink); ok {
		sink.Close()
		s.env.Audio = core.NopAudio{}
	}
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

func (s *session) runtime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.cfg.Loop.TargetFPS,
		Seed:     seed,
		Debug:    flagDebug,
	}
}

func (s *session) playTerminal(gameID string) (goBack bool, err error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}
	return tui.Run(game, tui.Options{
		Config:    s.cfg,
		Runtime:   s.runtime(),
		Env:       s.env,
		Store:     s.store,
		Prefs:     s.prefs,
		AllowBack: true,
	})
}

func (s *session) playWindow(gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	rc := s.runtime()
	rc.ScreenW, rc.ScreenH = int(s.cfg.World.Width), int(s.cfg.World.Height)
	return gui.Run(game, gui.Options{
		Config:  s.cfg,
		Runtime: rc,
		Env:     s.env,
		Store:   s.store,
		Prefs:   s.prefs,
		Scale:   flagScale,
	})
}

// menuLoop shows the menu until the player quits; rounds and the
// scoreboard return to it.
func (s *session) menuLoop() error {
	for {
		rc := s.runtime()
		result, err := tui.RunMenu(s.store, rc.ScreenW, rc.ScreenH)
		if err != nil {
			return err
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(s.store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.GameID != "":
			goBack, err := s.playTerminal(result.GameID)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
		}
	}
}
