// Package fileutil locates task input files on disk.
//
// ScanDirectory walks a directory with extension and name-pattern filters
// and returns sorted absolute paths, collecting non-fatal walk errors
// instead of aborting. FindCompanion builds on it to find the event log
// written next to a trial table by the same session, e.g.
// AA06LC00_BELT_TEST_2021_Jun_09_1320.log beside the .csv of the same stem.
package fileutil
