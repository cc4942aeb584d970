package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Render the report of a scanned image
func formatScan(name string, m *imp.Mat, e *imp.Extrema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%dx%d, %d channel(s))\n", name, m.Cols, m.Rows, m.Channels)
	b.WriteString(e.String())
	return b.String()
}

// Download, scan and record every image attached to the message
func scanAttachments(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) == 0 {
		sendUsage(ctx, "(with one or more attached images)")
		return
	}
	fetcher, err := getFetcher(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}

	scans := make([]models.Scan, 0, len(ctx.Msg.Attachments))
	for _, att := range ctx.Msg.Attachments {
		log := logrus.WithFields(logrus.Fields{
			"guild": ctx.Msg.GuildID,
			"image": att.Filename,
		})

		c, cancel := context.WithTimeout(context.Background(), viper.GetDuration("bot.fetch_timeout"))
		m, err := fetcher.Fetch(c, att.URL, imp.AnyColor)
		cancel()
		if err != nil {
			log.WithError(err).Warn("Couldn't fetch attachment")
			sendWarning(ctx, fmt.Sprintf("Couldn't open <%s>: `%s`", att.URL, err))
			continue
		}

		start := time.Now()
		e, err := imp.FindExtrema(m)
		if err != nil {
			sendWarning(ctx, fmt.Sprintf("While scanning `%s`: `%s`", att.Filename, err))
			continue
		}
		log.WithField("elapsed", time.Since(start)).Debug("Scanned attachment")

		sendBlock(ctx, formatScan(att.Filename, m, e))
		scans = append(scans, models.NewScan(att.Filename, ctx.Msg.GuildID, m, e, true))
	}

	if len(scans) == 0 {
		markPoop(ctx)
		return
	}

	err = transaction(ctx, func(tx *gorm.DB) error {
		for i := range scans {
			if err := scans[i].Create(tx); err != nil {
				return internalError(ctx, err)
			}
		}
		return nil
	})
	if err == nil {
		markOk(ctx)
	}
}
