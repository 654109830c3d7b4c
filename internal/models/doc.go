// Package models defines the data types shared by the storage tiers, the
// status fetcher and the command line: server configurations, decoded push
// status records and push message templates.
package models
