package emmet

// cssProperties maps property abbreviations to full property names.
var cssProperties = map[string]string{
	"ac":    "align-content",
	"ai":    "align-items",
	"as":    "align-self",
	"anim":  "animation",
	"animn": "animation-name",
	"animd": "animation-duration",
	"b":     "bottom",
	"bd":    "border",
	"bdb":   "border-bottom",
	"bdc":   "border-color",
	"bdl":   "border-left",
	"bdr":   "border-right",
	"bdrs":  "border-radius",
	"bds":   "border-style",
	"bdt":   "border-top",
	"bdw":   "border-width",
	"bg":    "background",
	"bgc":   "background-color",
	"bgi":   "background-image",
	"bgp":   "background-position",
	"bgr":   "background-repeat",
	"bgs":   "background-size",
	"bxsh":  "box-shadow",
	"bxz":   "box-sizing",
	"c":     "color",
	"cl":    "clear",
	"cnt":   "content",
	"cur":   "cursor",
	"d":     "display",
	"fl":    "float",
	"fx":    "flex",
	"fxb":   "flex-basis",
	"fxd":   "flex-direction",
	"fxg":   "flex-grow",
	"fxs":   "flex-shrink",
	"fxw":   "flex-wrap",
	"ff":    "font-family",
	"fs":    "font-style",
	"fw":    "font-weight",
	"fz":    "font-size",
	"g":     "gap",
	"gtc":   "grid-template-columns",
	"gtr":   "grid-template-rows",
	"h":     "height",
	"jc":    "justify-content",
	"l":     "left",
	"lh":    "line-height",
	"lis":   "list-style",
	"list":  "list-style-type",
	"lts":   "letter-spacing",
	"m":     "margin",
	"mb":    "margin-bottom",
	"ml":    "margin-left",
	"mr":    "margin-right",
	"mt":    "margin-top",
	"mah":   "max-height",
	"maw":   "max-width",
	"mih":   "min-height",
	"miw":   "min-width",
	"op":    "opacity",
	"ord":   "order",
	"ol":    "outline",
	"ov":    "overflow",
	"ovx":   "overflow-x",
	"ovy":   "overflow-y",
	"p":     "padding",
	"pb":    "padding-bottom",
	"pl":    "padding-left",
	"pr":    "padding-right",
	"pt":    "padding-top",
	"pos":   "position",
	"r":     "right",
	"t":     "top",
	"ta":    "text-align",
	"td":    "text-decoration",
	"ti":    "text-indent",
	"tt":    "text-transform",
	"trf":   "transform",
	"trs":   "transition",
	"us":    "user-select",
	"v":     "visibility",
	"va":    "vertical-align",
	"w":     "width",
	"whs":   "white-space",
	"wob":   "word-break",
	"z":     "z-index",
}

// cssKeywords maps keyword abbreviations per full property name.
var cssKeywords = map[string]map[string]string{
	"display": {
		"n": "none", "b": "block", "i": "inline", "ib": "inline-block",
		"f": "flex", "if": "inline-flex", "g": "grid", "ig": "inline-grid",
		"t": "table", "tc": "table-cell", "tr": "table-row", "li": "list-item",
		"c": "contents",
	},
	"position": {
		"a": "absolute", "r": "relative", "f": "fixed", "s": "static", "st": "sticky",
	},
	"float":      {"n": "none", "l": "left", "r": "right"},
	"clear":      {"n": "none", "l": "left", "r": "right", "b": "both"},
	"visibility": {"v": "visible", "h": "hidden", "c": "collapse"},
	"overflow":   {"v": "visible", "h": "hidden", "s": "scroll", "a": "auto"},
	"overflow-x": {"v": "visible", "h": "hidden", "s": "scroll", "a": "auto"},
	"overflow-y": {"v": "visible", "h": "hidden", "s": "scroll", "a": "auto"},
	"font-weight": {
		"n": "normal", "b": "bold", "br": "bolder", "lr": "lighter",
	},
	"font-style":      {"n": "normal", "i": "italic", "o": "oblique"},
	"text-align":      {"l": "left", "r": "right", "c": "center", "j": "justify"},
	"text-decoration": {"n": "none", "u": "underline", "o": "overline", "l": "line-through"},
	"text-transform":  {"n": "none", "c": "capitalize", "u": "uppercase", "l": "lowercase"},
	"vertical-align": {
		"t": "top", "m": "middle", "b": "bottom", "bl": "baseline",
	},
	"white-space":    {"n": "normal", "p": "pre", "nw": "nowrap", "pw": "pre-wrap"},
	"cursor":         {"p": "pointer", "d": "default", "t": "text", "m": "move", "a": "auto"},
	"box-sizing":     {"bb": "border-box", "cb": "content-box"},
	"flex-direction": {"r": "row", "rr": "row-reverse", "c": "column", "cr": "column-reverse"},
	"flex-wrap":      {"n": "nowrap", "w": "wrap", "wr": "wrap-reverse"},
	"justify-content": {
		"fs": "flex-start", "fe": "flex-end", "c": "center",
		"sb": "space-between", "sa": "space-around", "se": "space-evenly",
	},
	"align-items": {
		"fs": "flex-start", "fe": "flex-end", "c": "center", "b": "baseline", "s": "stretch",
	},
	"align-self": {
		"a": "auto", "fs": "flex-start", "fe": "flex-end", "c": "center", "b": "baseline", "s": "stretch",
	},
	"border-style": {
		"n": "none", "s": "solid", "dt": "dotted", "ds": "dashed", "db": "double",
	},
	"background-repeat": {
		"n": "no-repeat", "x": "repeat-x", "y": "repeat-y",
	},
	"list-style-type": {"n": "none", "d": "disc", "c": "circle", "s": "square"},
	"user-select":     {"n": "none", "a": "auto", "t": "text"},
	"word-break":      {"n": "normal", "k": "keep-all", "ba": "break-all"},
}

// cssGlobalKeywords apply to every property.
var cssGlobalKeywords = map[string]string{
	"a":   "auto",
	"i":   "inherit",
	"ini": "initial",
	"n":   "none",
	"s":   "solid",
	"t":   "transparent",
	"u":   "unset",
}

// cssSnippets are complete declarations with their own tab stops.
var cssSnippets = map[string]string{
	"bd+":   "border: ${1:1px} ${2:solid} ${3:#000}",
	"bdt+":  "border-top: ${1:1px} ${2:solid} ${3:#000}",
	"bdb+":  "border-bottom: ${1:1px} ${2:solid} ${3:#000}",
	"bdl+":  "border-left: ${1:1px} ${2:solid} ${3:#000}",
	"bdr+":  "border-right: ${1:1px} ${2:solid} ${3:#000}",
	"bg+":   "background: ${1:#fff} url(${2}) ${3:0} ${4:0} ${5:no-repeat}",
	"ol+":   "outline: ${1:1px} ${2:solid} ${3:#000}",
	"bxsh+": "box-shadow: ${1:0} ${2:0} ${3:0} ${4:#000}",
	"trs+":  "transition: ${1:prop} ${2:time}",
	"fx+":   "flex: ${1:1} ${2:1} ${3:auto}",
	"cnt+":  "content: '${1}'",
}

// atRules are stylesheet blocks; they are emitted verbatim without a
// trailing semicolon.
var atRules = map[string]string{
	"@m":  "@media ${1:screen} {\n\t${2}\n}",
	"@media": "@media ${1:screen} {\n\t${2}\n}",
	"@i":  "@import url(${1});",
	"@import": "@import url(${1});",
	"@f":  "@font-face {\n\tfont-family: ${1};\n\tsrc: url(${2});\n}",
	"@kf": "@keyframes ${1:identifier} {\n\t${2}\n}",
	"@cs": "@charset \"${1:UTF-8}\";",
	"@s":  "@supports ${1:condition} {\n\t${2}\n}",
}

// unitless properties take bare numbers.
var unitless = setOf(
	"z-index", "line-height", "opacity", "font-weight", "flex", "flex-grow",
	"flex-shrink", "order",
)

var unitAliases = map[string]string{
	"p": "%",
	"e": "em",
	"x": "ex",
	"r": "rem",
}
