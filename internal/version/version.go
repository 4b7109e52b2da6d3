package version

// Version is the current release version of teamscope.
const Version = "0.1.0"
