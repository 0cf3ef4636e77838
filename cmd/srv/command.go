package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path of the toml config file",
		EnvVars: []string{"REWARD_CONFIG"},
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "rewardengine"
	s.app.Usage = "Virtual currency and reward draw service"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Used for start service api, it serves the wallet, draw and admin apis.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Flags:       []cli.Flag{configFlag},
			Category:    "Database",
			Description: `Used to apply sql migrations to mysql, or create the tables of a sqlite database.`,
		},
	}
}
