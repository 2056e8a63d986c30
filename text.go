package main

type Project struct {
	Title       string
	Description string
	Link        string
}

type Link struct {
	Label string
	URL   string
}

type Education struct {
	Degree      string
	Institution string
	Years       string
	Grade       string
	Coursework  []string
}

var (
	Name    = "Archna Bishnoi"
	Tagline = "Python Developer & ML Engineer"

	HeroTitle    = "Hi, I'm Archna Bishnoi🎀✨"
	HeroSubtitle = "Python Developer & Machine Learning Enthusiast"

	AboutMe = `Passionate about leveraging Python and Machine Learning to build innovative solutions.
	Specializing in computer vision and predictive modeling, I combine technical expertise
	with creative problem-solving to develop applications that make a real impact.`

	Projects = []Project{
		{
			Title: "Computer Vision Cursor Control",
			Description: `An OpenCV-based Python application that enables hands-free computer control
			using hand movements and gestures, enhancing accessibility.`,
			Link: "#",
		},
		{
			Title: "Diamond Price Predictor",
			Description: `Machine learning model built with Python and scikit-learn to predict diamond
			prices based on various characteristics like cut, clarity, and carat.`,
			Link: "https://diamond-prediction-project.glitch.me/project",
		},
	}

	Skills = []string{
		"Python", "Django", "Flask", "FastAPI", "Pandas",
		"NumPy", "SQL", "Git", "REST APIs", "Docker",
	}

	Degree = Education{
		Degree:      "B.Tech in Electronics and Communications Engineering",
		Institution: "Guru Nanak Dev University, Amritsar",
		Years:       "2022 - 2026",
		Grade:       "CGPA: 7.14",
		Coursework: []string{
			"Data Structures & Algorithms",
			"Object-Oriented Programming",
			"Database Management Systems",
			"Operating Systems",
			"Computer Networks",
			"Web Development",
		},
	}

	ContactBlurb = `I'm always interested in hearing about new opportunities, collaborations,
	or just having a chat about technology.`

	SocialLinks = []Link{
		{Label: "GitHub", URL: "https://github.com/Archna-29"},
		{Label: "LinkedIn", URL: "https://www.linkedin.com/in/archna-bishnoi-997ab22b1"},
		{Label: "LeetCode", URL: "https://leetcode.com/yourusername"},
		{Label: "Resume", URL: "/resume"},
	}

	ContactLinks = []Link{
		{Label: "Say Hello 👋", URL: "mailto:bishnoi0315@gmail.com"},
		{Label: "Instagram", URL: "https://instagram.com/archnabishnoi__/"},
	}

	NavItems = []string{"Home", "Education", "Projects", "Skills", "Contact"}
)
