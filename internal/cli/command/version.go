package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/shardmap-go/internal/cli/output"
	"github.com/yndnr/shardmap-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			return render(c, versionReport(buildinfo.Get()))
		},
	}
}

type versionReport buildinfo.Info

func (v versionReport) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("version", v.Version)
	t.AddRow("commit", v.Commit)
	t.AddRow("build_time", v.BuildTime)
	t.AddRow("go_version", v.GoVersion)
	return t
}
