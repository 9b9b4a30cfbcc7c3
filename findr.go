package findr

// Version is the current findr release.
const Version = "0.1.0"
