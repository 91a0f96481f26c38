package token

const Version = "v0.1.0"
