package simplekit

// Version is the toolkit version reported at startup
const Version = "0.4.0"
