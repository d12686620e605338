// Package assets holds the theme presets that style generated documents.
//
// Presets are YAML files. The built-in ones are compiled into the binary;
// a user directory with a themes/ folder can add presets or shadow a
// built-in one by name. A Stack consults its stores in order.
package assets
