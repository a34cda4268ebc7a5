package slack

var Truncate = truncate
