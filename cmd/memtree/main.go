package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/memtree/memtree"
	"github.com/memtree/memtree/config"
	"github.com/memtree/memtree/filesystem"
	"github.com/memtree/memtree/internal/util"
	"github.com/memtree/memtree/requests"
	"github.com/memtree/memtree/shell"
)

func main() {
	app := &cli.App{
		Name:  "memtree",
		Usage: "browse and edit a simulated filesystem held entirely in memory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (.yaml, .yml or .json)",
			},
			&cli.StringFlag{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "Path to seed nodes file (json)",
			},
			&cli.IntFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Value:   config.InfoVerbose,
				Usage:   "Log verbosity level between 1 (error) and 5 (trace)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	override := &config.ConfigOverride{}
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadConfigOverrideFile(path)
		if err != nil {
			return cli.Exit("failed to load config: "+err.Error(), 1)
		}
		override = loaded
	}
	// CLI verbosity wins over the config file only when explicitly passed
	if c.IsSet("verbose") || override.LogLvl == nil {
		override.LogLvl = util.Pointer(c.Int("verbose"))
	}
	cfg := config.NewConfig(override)

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")
	logger.Info().Str("seed", c.String("seed")).Msg("memtree initializing")

	tree := memtree.New(cfg)

	// Observer keeping the log in sync with every structural change
	evLogger := util.GetLogger("events")
	tree.Bus().Subscribe(func(ev filesystem.Event) {
		evLogger.Debug().
			Stringer("event", ev.Kind).
			Uint64("node", ev.NodeID).
			Uint64("parent", ev.ParentID).
			Str("name", ev.Name).
			Msg("Tree changed")
	})

	if seedPath := c.String("seed"); seedPath != "" {
		seedTree(tree, seedPath, logger)
	} else {
		logger.Debug().Msg("No seed file provided; starting with an empty tree")
	}

	if err := tree.ConfigureHome(); err != nil {
		logger.Warn().Err(err).Str("home", cfg.HomePath).Msg("Home anchor not resolvable; `~` stays literal")
	}

	return shell.New(tree, os.Stdin, os.Stdout).Run()
}

// seedTree loads node definitions from a JSON file and applies them,
// directories first so file parents exist. Individual failures are logged
// and skipped; a bad seed entry never aborts the session.
func seedTree(tree *memtree.FileTree, path string, logger util.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal().Err(err).Str("seed", path).Msg("Failed to read seed file")
	}

	var rawNodes []json.RawMessage
	if err := json.Unmarshal(data, &rawNodes); err != nil {
		logger.Fatal().Err(err).Str("seed", path).Msg("Failed to unmarshal seed file")
	}

	var fileRequests []*memtree.FileCreateRequest
	var dirRequests []*memtree.DirCreateRequest

	for _, rawNode := range rawNodes {
		nodeType, err := requests.GetNodeType(rawNode)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to get node type")
			continue
		}

		switch nodeType {
		case memtree.FileNodeType:
			fileReq, err := requests.UnmarshalFileRequest(rawNode)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal file request")
				continue
			}
			fileRequests = append(fileRequests, fileReq)

		case memtree.DirNodeType:
			dirReq, err := requests.UnmarshalDirRequest(rawNode)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal directory request")
				continue
			}
			dirRequests = append(dirRequests, dirReq)

		default:
			logger.Warn().Str("type", string(nodeType)).Msg("Unknown node type")
		}
	}

	dirAddCnt := 0
	for _, req := range dirRequests {
		if _, err := tree.AddDirNode(req); err != nil {
			logger.Debug().Err(err).Str("path", req.Path).Msg("Failed to add directory request")
			continue
		}
		dirAddCnt++
	}
	fileAddCnt := 0
	for _, req := range fileRequests {
		if _, err := tree.AddFileNode(req); err != nil {
			logger.Debug().Err(err).Str("path", req.Path).Msg("Failed to add file request")
			continue
		}
		fileAddCnt++
	}
	logger.Info().Int("directories", dirAddCnt).Int("files", fileAddCnt).Msg("Seeded tree")
}
