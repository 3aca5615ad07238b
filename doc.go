// Package main provides the entry point for the udo-story website.
// It runs a web server using the Fiber framework that serves the public
// pages of a touring musician's site (tour dates, gallery, reviews) plus an
// admin panel for content management. All content lives in a single embedded
// SQLite database file that is rewritten as a whole after every mutation.
package main
