// Package fetch downloads audio, video, images and webpages for a list of
// urls.
//
// A Request is an immutable value built with chained With* calls and handed to
// one of the Fetcher's terminal operations (Audio, Video, Images, Webpages).
// Each operation runs one job per url, either in input order or on a pool of
// workers when the request is parallel, and always waits for every job before
// returning a Report.
//
// Audio and Video stop at the first failing job by default; Images and
// Webpages record failures in the Report and carry on. Either default can be
// overridden with Request.WithPolicy.
package fetch
