// Package models defines the inventory record and the stock adjustment event.
package models
