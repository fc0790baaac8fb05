// tensec is Ten Second Life: a puzzle game played in ten-second lives.
//
// Usage:
//
//	tensec                    - Start the launcher menu
//	tensec play               - Start playing right away
//	tensec levels             - List the level catalog
//	tensec progress [--reset] - Show or erase saved progress
//	tensec runs               - Show run history
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible quotes
//	--db <path>          - Set run history database path
//	--save <path>        - Set progress file (.yaml or .json)
//	--config <path>      - Load a custom game config YAML
//	--difficulty <name>  - easy, normal or hard
//	--levels-dir <dir>   - Load levels from a directory instead of the built-in set
//	--watch              - Reload levels when files in --levels-dir change
//	--mute               - Disable audio
//	--log <path>         - Log file (default: ~/.tensec/tensec.log)
//	--debug              - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagSavePath   string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagWatch      bool
	flagMute       bool
	flagLogPath    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tensec",
	Short: "Ten Second Life - every life lasts ten seconds",
	Long: `Ten Second Life is a puzzle game for the terminal. Each life lasts ten
seconds; doors you open, keys you use and switches you flip stay that way
for the next life.

Available commands:
  play      - Start playing right away
  levels    - List the level catalog
  progress  - Show or reset saved progress
  runs      - Show run history

Run without a command to open the launcher menu.

Examples:
  tensec
  tensec play --difficulty easy
  tensec play --levels-dir ./levels --watch
  tensec progress --reset
  tensec runs --plain`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to run history database (default from config: ~/.tensec/tensec.db)")
	pf.StringVar(&flagSavePath, "save", "", "Path to progress file, .yaml or .json (default from config: ~/.tensec/world.yaml)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Load levels from this directory instead of the built-in set")
	pf.BoolVar(&flagWatch, "watch", false, "Reload levels when --levels-dir changes")
	pf.BoolVar(&flagMute, "mute", false, "Disable audio")
	pf.StringVar(&flagLogPath, "log", "", "Log file (default: ~/.tensec/tensec.log)")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(runsCmd)
}
