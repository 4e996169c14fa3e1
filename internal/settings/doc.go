// Package settings keeps one key/value configuration file in memory and
// saves it back whenever a change is made.
//
// A Manager is created from a path that may not exist yet. Variables are
// declared with LoadVar, which fills in a default (optionally asking the user)
// only when the key is absent, so values already in the file always win.
// Every mutating call marks the manager dirty and the file is rewritten once
// at the end of the call. Null values are never written.
package settings
