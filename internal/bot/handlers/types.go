// Package handlers contains the message and command handlers of the bot.
package handlers

import (
	telebot "gopkg.in/telebot.v3"
)

// Handler processes a single inbound update.
type Handler func(c telebot.Context) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler
