package scheme

// Version is reported by the sch command line tool.
const Version = "0.3.1"
