// Package events provides the in-process change-notification channel between
// the store and its watchers. Every successful write publishes a ChangeEvent;
// watch queries re-run and re-emit their snapshot on every relevant event.
package events
