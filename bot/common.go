package bot

import (
	"errors"
	"fmt"

	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var (
	errNoDB      = errors.New("couldn't get DB from context")
	errNoFetcher = errors.New("couldn't get fetcher from context")
)

// React with a poopy (indicate failure)
func markPoop(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "💩")
}

// React with a thumbs up (indicate success)
func markOk(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "👍")
}

// Report an error
func sendError(ctx *exrouter.Context, err error) error {
	ctx.Reply("📛 ", err)
	return err
}

// Report an information
func sendInfo(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("ℹ️  ", fmt.Sprint(args...))
}

// Report a warning
func sendWarning(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("⚠️  ", fmt.Sprint(args...))
}

// Report an internal error
func internalError(ctx *exrouter.Context, err error) error {
	logrus.WithFields(logrus.Fields{
		"guild":   ctx.Msg.GuildID,
		"channel": ctx.Msg.ChannelID,
	}).WithError(err).Error("Internal error")
	return sendError(ctx, fmt.Errorf("Internal error (`%w`)", err))
}

// Send correct command syntax
func sendUsage(ctx *exrouter.Context, syntax string) {
	sendWarning(ctx, fmt.Sprintf("syntax: `%s %s`", ctx.Args[0], syntax))
}

// Send a code block
func sendBlock(ctx *exrouter.Context, text string) {
	ctx.Reply("```" + text + "```")
}

// Get database instance from the context
func getDB(ctx *exrouter.Context) (db *gorm.DB, err error) {
	db, _ = ctx.Get("db").(*gorm.DB)
	if db == nil {
		err = errNoDB
	}
	return
}

// Get image fetcher from the context
func getFetcher(ctx *exrouter.Context) (f *input.Fetcher, err error) {
	f, _ = ctx.Get("fetcher").(*input.Fetcher)
	if f == nil {
		err = errNoFetcher
	}
	return
}

// Helper to execute a database transaction
func transaction(ctx *exrouter.Context, fn func(*gorm.DB) error) error {
	db, err := getDB(ctx)
	if err != nil {
		return internalError(ctx, err)
	}
	return db.Transaction(fn)
}
