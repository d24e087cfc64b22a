// Package captcha generates challenge text and renders it as a PNG image.
//
// Text generation uses crypto/rand over an alphabet with visually ambiguous
// glyphs removed (no 0/O, 1/l/I). Rendering is delegated to base64Captcha's
// string driver; the produced answer is compared case-insensitively by the
// caller, so the alphabet mixes cases freely.
package captcha
