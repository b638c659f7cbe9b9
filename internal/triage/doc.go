// Package triage sorts screenshots into folders named after their title text.
//
// A Batch walks one input folder. For each image it crops the title strip
// (imaging.ExtractRegion), runs the recognizer on it, picks the classification
// key with SelectKey and hands the result to a Router, which copies the
// original file to <root>/<key>/ or, on any failure, to <root>/error/.
// Stats collects totals per batch and can be merged across batches.
//
// Processing is strictly sequential. Images are visited in file-name order;
// a stop request is honoured between images only.
package triage
