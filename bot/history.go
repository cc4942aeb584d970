package bot

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const historyLength = 15

// List the latest scans of the guild
func listScans(ctx *exrouter.Context) {
	var scans []models.Scan
	err := transaction(ctx, func(tx *gorm.DB) (err error) {
		if scans, err = models.ListScans(tx, ctx.Msg.GuildID, historyLength); err != nil {
			internalError(ctx, err)
		}
		return
	})
	if err != nil {
		return
	}
	if len(scans) == 0 {
		sendWarning(ctx, "No image was scanned yet. Post some with `extremes` to scan them.")
		return
	}
	sendBlock(ctx, formatHistory(scans))
}

func formatHistory(scans []models.Scan) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "IMAGE\tSIZE\tCHANNELS\tSCANNED\t")
	for _, s := range scans {
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\t\n", s.Source, s.Cols, s.Rows, s.Channels, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return b.String()
}

// Find the recorded image name closest to the given one.
func findClosestSource(name string, sources []string) (best string, score int) {
	score = len(name)
	for _, s := range sources {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(s), levenshtein.DefaultOptions)
		if d < score {
			best = s
			score = d
		}
	}
	return
}

// Show the last recorded result for an image
func showScan(ctx *exrouter.Context) {
	if len(ctx.Args) != 2 {
		sendUsage(ctx, "<image name>")
		return
	}
	name := ctx.Args[1]

	err := transaction(ctx, func(tx *gorm.DB) error {
		sources, err := models.ListSources(tx, ctx.Msg.GuildID)
		if err != nil {
			return internalError(ctx, err)
		}
		source, score := findClosestSource(name, sources)
		if source == "" || score > len(source)/2 {
			return sendError(ctx, fmt.Errorf("No such image: `%s`", name))
		}

		scan, err := models.FindLatestScan(tx, ctx.Msg.GuildID, source)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sendError(ctx, fmt.Errorf("No such image: `%s`", name))
		} else if err != nil {
			return internalError(ctx, err)
		}
		sendBlock(ctx, scan.String()+"\n"+scan.Result().String())
		return nil
	})
	if err != nil {
		markPoop(ctx)
	}
}
