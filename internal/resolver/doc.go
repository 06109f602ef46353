/*
Package resolver converts raw import names into canonical module
identifiers.

A canonical identifier is an extension-less path in a virtual hierarchy.
The empty string names the current file, a pure-ascent form such as
"../.." names a directory strictly above it, and any other string is a
nested path like "bar/foo". A canonical identifier never starts with "./"
and never ends with "/".

Raw import names come in three shapes: absolute (leading "/", used as-is),
relative (leading "./" or "../", resolved against the importing module's
identifier), and bare (everything else, resolved through the global name
table).
*/
package resolver
