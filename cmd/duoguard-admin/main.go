// Command duoguard-admin runs provisioning tasks against the document
// store: seeding the challenge catalog and granting admin rights.
//
//	duoguard-admin import-challenges --file challenges.json
//	duoguard-admin set-admins alice@example.com bob@example.com
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/girojogos/duoguard/admin"
	"github.com/girojogos/duoguard/config"
	"github.com/girojogos/duoguard/gateway"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/store"
)

const usage = `usage: duoguard-admin <command> [flags]

commands:
  import-challenges   seed the challenge catalog from a JSON file
  set-admins          grant admin rights to users by email
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "import-challenges":
		err = runImport(args)
	case "set-admins":
		err = runSetAdmins(args)
	default:
		fmt.Fprintf(os.Stderr, "duoguard-admin: unknown command %q\n%s", command, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "duoguard-admin: %v\n", err)
		os.Exit(1)
	}
}

func runImport(args []string) error {
	flags := pflag.NewFlagSet("import-challenges", pflag.ExitOnError)
	configFile := flags.StringP("config", "c", "", "path to config.yml")
	file := flags.StringP("file", "f", "challenges.json", "challenge seed file")
	actor := flags.String("actor", "duoguard-admin", "audit trail actor name")
	if err := flags.Parse(args); err != nil {
		return err
	}

	gw, cleanup, err := openGateway(*configFile)
	if err != nil {
		return err
	}
	defer cleanup()

	importer := admin.NewImporter(gw, *actor, logger.GetGlobalLogger())
	summary, err := importer.ImportChallenges(context.Background(), *file)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d challenges (%d active, %d inactive)\n",
		summary.Total, summary.Active, summary.Inactive)
	return nil
}

func runSetAdmins(args []string) error {
	flags := pflag.NewFlagSet("set-admins", pflag.ExitOnError)
	configFile := flags.StringP("config", "c", "", "path to config.yml")
	actor := flags.String("actor", "duoguard-admin", "audit trail actor name")
	emailFlags := flags.StringArrayP("email", "e", nil, "email to grant admin (repeatable)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	emails := append(*emailFlags, flags.Args()...)
	if len(emails) == 0 {
		return fmt.Errorf("set-admins requires at least one email")
	}

	gw, cleanup, err := openGateway(*configFile)
	if err != nil {
		return err
	}
	defer cleanup()

	assigner := admin.NewAssigner(gw, *actor, logger.GetGlobalLogger())
	summary, err := assigner.AssignAdmins(context.Background(), emails)
	if err != nil {
		return err
	}

	fmt.Printf("granted admin to %d user(s)\n", summary.Granted)
	for _, email := range summary.NotFound {
		fmt.Printf("no user found for %s\n", email)
	}
	return nil
}

func openGateway(configFile string) (*gateway.Gateway, func(), error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	cfg, err := config.Load("duoguard-admin", opts...)
	if err != nil {
		return nil, nil, err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	s, err := store.Open(cfg.Store, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = s.Close() }

	return gateway.New(s, log, nil), cleanup, nil
}
