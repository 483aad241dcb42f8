// Package pages holds full-page templates. Each renders inside PageLayout.
package pages
