// Package language validates the language tags that DVD authoring accepts for
// audio streams and subpicture (subtitle) streams.
//
// dvdauthor only understands two-letter ISO 639-1 codes. Callers may pass a
// two-letter code, a three-letter ISO 639-2 code, or any BCP 47 tag such as
// "fr-CA"; Verify reduces the input to its base language and checks it against
// the table below.
package language
