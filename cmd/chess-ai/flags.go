// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-ai-go/internal/config"
)

var (
	// Search options
	depth    = flag.Int("depth", 3, "Search depth in plies")
	seed     = flag.Int64("seed", 0, "Random seed for move shuffling (0 = time based)")
	startFEN = flag.String("fen", "", "Start position in FEN (default: standard start)")

	// Modes
	perftDepth    = flag.Int("perft", 0, "Count legal move tree leaves to depth N and print the divide")
	verifyDepth   = flag.Int("verify", 0, "Cross-check perft to depth N against the reference generator")
	selfPlayGames = flag.Int("selfplay", 0, "Play N AI-versus-AI games")
	serve         = flag.Bool("serve", false, "Run the HTTP and websocket game server")
	play          = flag.Bool("play", false, "Play against the AI on standard input (default mode)")

	// Interactive play options
	playBlack = flag.Bool("black", false, "Play the black pieces in -play mode")
	noBoard   = flag.Bool("noboard", false, "Don't print the board after each move")

	// Self-play options
	workers  = flag.Int("workers", 0, "Number of concurrent games (0 = auto-detect based on CPU cores)")
	maxPlies = flag.Int("maxplies", 200, "Ply limit after which a self-play game stops unfinished")

	// Server options
	addr      = flag.String("addr", ":3000", "Server listen address")
	origins   = flag.String("origins", "*", "CORS allowed origins")
	noReplies = flag.Bool("noreply", false, "Don't answer player moves with AI moves by default")

	// ECO classification
	ecoFile = flag.String("e", "", "Opening table file (default: built-in table)")

	// Game selection for -selfplay output
	tagFile            = flag.String("t", "", "Tag criteria file for filtering")
	playerFilter       = flag.String("p", "", "Filter by player name (either color)")
	ecoFilter          = flag.String("Te", "", "Filter by ECO code prefix")
	resultFilter       = flag.String("Tr", "", "Filter by result (1-0, 0-1, 1/2-1/2)")
	fenFilter          = flag.String("Tf", "", "Filter by FEN position reached")
	materialMatch      = flag.String("z", "", "Material balance to match (e.g., 'QR:qrr')")
	materialMatchExact = flag.String("y", "", "Exact material balance to match")
	minPly             = flag.Int("minply", 0, "Minimum ply count")
	maxPly             = flag.Int("maxply", 0, "Maximum ply count (0 = no limit)")
	checkmateFilter    = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	stalemateFilter    = flag.Bool("stalemate", false, "Only output games ending in stalemate")
	negateMatch        = flag.Bool("n", false, "Output games that DON'T match criteria")
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games")
	duplicateKey       = flag.String("Dkey", "final", "What makes games duplicates: final, positions, moves")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length")
	outputFormat = flag.String("W", "san", "Move notation: san, uci")
	jsonOutput   = flag.Bool("J", false, "Output games in JSON format")
	noMoveNums   = flag.Bool("nomovenumbers", false, "Don't output move numbers")
	noChecks     = flag.Bool("nochecks", false, "Don't output check and mate symbols")

	// Logging
	logLevel = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	logJSON  = flag.Bool("logjson", false, "Write logs as JSON lines")
	logFile  = flag.String("l", "", "Write logs to file (default: stderr)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration and validates
// the result.
func applyFlags(cfg *config.Config) error {
	applySearchFlags(cfg)
	if err := applySelfPlayFlags(cfg); err != nil {
		return err
	}
	applyServerFlags(cfg)
	applyLogFlags(cfg)
	if err := applyOutputFlags(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// applySearchFlags configures the search and start position.
func applySearchFlags(cfg *config.Config) {
	cfg.StartFEN = *startFEN
	cfg.Search.Depth = *depth
	cfg.Search.Seed = *seed
}

// applySelfPlayFlags configures self-play runs.
func applySelfPlayFlags(cfg *config.Config) error {
	if *selfPlayGames > 0 {
		cfg.SelfPlay.Games = *selfPlayGames
	}
	if *workers > 0 {
		cfg.SelfPlay.Workers = *workers
	}
	cfg.SelfPlay.MaxPlies = *maxPlies

	key, err := config.ParseDuplicateKey(*duplicateKey)
	if err != nil {
		return err
	}
	cfg.SelfPlay.DuplicateKey = key
	return nil
}

// applyServerFlags configures the game server.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *origins
	cfg.Server.AIReplies = !*noReplies
}

// applyLogFlags configures logging.
func applyLogFlags(cfg *config.Config) {
	cfg.Log.Level = *logLevel
	cfg.Log.JSON = *logJSON
}

// applyOutputFlags configures move text and game output.
func applyOutputFlags(cfg *config.Config) error {
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	cfg.Output.MaxLineLength = uint(*lineLength)
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.KeepMoveNumbers = !*noMoveNums
	cfg.Output.KeepChecks = !*noChecks
	cfg.Output.ShowBoard = !*noBoard
	return nil
}
