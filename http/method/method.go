package method

// Method is the request method token exactly as it arrived. Unknown tokens are
// legal and simply never match a method-restricted route.
type Method = string

const POST Method = "POST"
