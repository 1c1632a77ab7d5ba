package gen

// Version of asyncapi-gen.
const Version = "v0.1.0"
