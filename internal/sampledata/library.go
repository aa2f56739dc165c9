package sampledata

import (
	"github.com/ganot/nirapod/internal/domain/guide"
	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/ganot/nirapod/internal/domain/tutorial"
	"github.com/ganot/nirapod/internal/domain/wellness"
)

func Resources() []resource.Resource {
	return []resource.Resource{
		{ID: "1", Title: "Emergency Contact Information Card", Description: "Printable wallet-sized card for essential emergency contacts", FileType: resource.FilePDF, Category: "Emergency Contact Cards", Downloads: 12845, Size: "245 KB", LastUpdated: "Apr 05, 2025", Featured: true, DownloadURL: "/resources/emergency-contact-card.pdf"},
		{ID: "2", Title: "Home Security Assessment Checklist", Description: "Comprehensive checklist to evaluate your home's security vulnerabilities", FileType: resource.FilePDF, Category: "Safety Checklists", Downloads: 8763, Size: "1.2 MB", LastUpdated: "Mar 28, 2025", Featured: true, DownloadURL: "/resources/home-security-checklist.pdf"},
		{ID: "3", Title: "Family Emergency Plan Template", Description: "Customizable template for creating a family emergency response plan", FileType: resource.FileDoc, Category: "Emergency Preparedness", Downloads: 7452, Size: "890 KB", LastUpdated: "Apr 02, 2025", DownloadURL: "/resources/family-emergency-plan.docx"},
		{ID: "4", Title: "Travel Safety Protocol Cards", Description: "Printable cards with safety protocols for different travel scenarios", FileType: resource.FilePDF, Category: "Travel Safety", Downloads: 5231, Size: "1.8 MB", LastUpdated: "Mar 15, 2025", DownloadURL: "/resources/travel-safety-cards.pdf"},
		{ID: "5", Title: "Personal Safety Checklist", Description: "Daily checklist for personal safety habits and practices", FileType: resource.FilePDF, Category: "Safety Checklists", Downloads: 9874, Size: "380 KB", LastUpdated: "Apr 08, 2025", Featured: true, DownloadURL: "/resources/personal-safety-checklist.pdf"},
		{ID: "6", Title: "Home Security Quick Reference Guide", Description: "One-page reference sheet for home security best practices", FileType: resource.FilePDF, Category: "Home Security", Downloads: 6523, Size: "420 KB", LastUpdated: "Mar 25, 2025", DownloadURL: "/resources/home-security-reference.pdf"},
		{ID: "7", Title: "Emergency Response Protocols", Description: "Step-by-step protocols for common emergency situations", FileType: resource.FilePDF, Category: "Quick Reference", Downloads: 11245, Size: "1.4 MB", LastUpdated: "Apr 01, 2025", DownloadURL: "/resources/emergency-protocols.pdf"},
		{ID: "8", Title: "Community Safety Contact Directory", Description: "Template for creating a neighborhood safety contact list", FileType: resource.FileDoc, Category: "Emergency Contact Cards", Downloads: 3452, Size: "620 KB", LastUpdated: "Mar 18, 2025", DownloadURL: "/resources/community-contacts.docx"},
		{ID: "9", Title: "Travel Safety Audio Guide", Description: "Audio narration of key travel safety tips for on-the-go listening", FileType: resource.FileMP3, Category: "Travel Safety", Downloads: 2874, Size: "18.2 MB", LastUpdated: "Mar 30, 2025", DownloadURL: "/resources/travel-safety-audio.mp3"},
		{ID: "10", Title: "Emergency Kit Supply Checklist", Description: "Comprehensive list of supplies for home emergency kits", FileType: resource.FilePDF, Category: "Emergency Preparedness", Downloads: 15632, Size: "520 KB", LastUpdated: "Apr 07, 2025", Featured: true, DownloadURL: "/resources/emergency-kit-checklist.pdf"},
	}
}

func Guides() []guide.Guide {
	return []guide.Guide{
		{
			ID:            "1",
			Title:         "Basic Self-Defense Moves for Beginners",
			Description:   "Learn fundamental self-defense techniques that can be effective regardless of size or strength.",
			Category:      "Basic Self-Defense",
			Difficulty:    guide.Beginner,
			EstimatedTime: "15 minutes",
			Author:        "Sarah Martinez",
			LastUpdated:   "March 15, 2025",
			Views:         15422,
			Likes:         947,
			Sections:      selfDefenseSections(),
			Attachments: []guide.Attachment{
				{ID: "r1", Name: "Self-Defense Technique Printable Reference", Type: "pdf", URL: "/resources/self-defense-reference.pdf", Size: "2.4 MB"},
				{ID: "r2", Name: "Wrist Escape Video Demonstration", Type: "video", URL: "/resources/wrist-escape-demo.mp4", Size: "18.7 MB"},
				{ID: "r3", Name: "Practice Checklist", Type: "checklist", URL: "/resources/practice-checklist.pdf", Size: "0.8 MB"},
			},
		},
		{ID: "2", Title: "Developing Situational Awareness", Description: "Train yourself to recognize potential threats before they become dangerous.", Category: "Situational Awareness", Difficulty: guide.Beginner, Author: "Michael Chen", LastUpdated: "April 2, 2025"},
		{ID: "3", Title: "Verbal De-escalation Techniques", Description: "Learn how to defuse tense situations using effective communication strategies.", Category: "De-escalation", Difficulty: guide.Intermediate, Author: "David Wilson", LastUpdated: "March 28, 2025"},
		{ID: "4", Title: "Home Security Assessment", Description: "Step-by-step guide to evaluating and improving your home's security.", Category: "Home Security", Difficulty: guide.Beginner, Author: "Jennifer Park", LastUpdated: "March 5, 2025"},
		{ID: "5", Title: "Travel Safety Protocols", Description: "Essential safety practices for traveling locally and internationally.", Category: "Travel Safety", Difficulty: guide.Intermediate, Author: "Carlos Rodriguez", LastUpdated: "April 10, 2025"},
		{ID: "6", Title: "Advanced Home Security Systems", Description: "Comprehensive guide to modern home security technologies and integration.", Category: "Home Security", Difficulty: guide.Advanced, Author: "Alicia Johnson", LastUpdated: "March 22, 2025"},
	}
}

func selfDefenseSections() []guide.Section {
	return []guide.Section{
		{
			ID:    "s1",
			Title: "Proper Defensive Stance",
			Content: "Your stance is the foundation of all self-defense techniques. Position your feet shoulder-width apart, " +
				"place your dominant foot slightly back, bend your knees, raise your hands to protect your face and tuck your chin.",
			Tips: []string{
				"Practice shifting your weight between feet while maintaining the stance",
				"Try to move in all directions while keeping your hands up and balance centered",
			},
		},
		{
			ID:    "s2",
			Title: "Palm Heel Strike",
			Content: "The palm heel strike uses the hard base of your palm to deliver impact while protecting your fingers. " +
				"Strike forward with the heel of your palm, aim for the nose, chin or chest and pull back to your stance.",
			Tips: []string{
				"Practice on a cushion or pad to get used to the impact",
				"Keep your wrist straight and aligned with your forearm to prevent injury",
			},
			Warnings: []string{
				"Never practice strikes on another person without proper training and safety equipment",
			},
		},
		{
			ID:    "s3",
			Title: "Basic Wrist Escape",
			Content: "To escape a same-side wrist grab, rotate your hand so your thumb points down, step toward the attacker " +
				"and arc your elbow up and over to break the grip at the thumb. Move away as soon as you are free.",
			Tips: []string{
				"Practice slowly with a partner, gradually increasing speed",
				"Focus on the rotation motion rather than pulling away",
			},
			VideoURL: "https://example.com/videos/wrist-escape",
		},
		{
			ID:    "s4",
			Title: "Practice Routine",
			Content: "Practice the stance for a few minutes daily, add palm heel strikes on each side and rehearse wrist " +
				"escapes with a partner. Self-defense is about escaping danger, so always prioritize getting to safety.",
			Tips: []string{
				"Consistent short practice sessions are more effective than occasional long ones",
			},
			Warnings: []string{
				"Consider professional self-defense classes for comprehensive training",
			},
		},
	}
}

func Meditations() []wellness.Meditation {
	return []wellness.Meditation{
		{ID: "1", Title: "Stress Relief Breathing", Description: "Guided breathing exercise to reduce stress and anxiety in moments of tension.", Duration: "10 min", Category: "stress", Level: "beginner", Featured: true, AudioURL: "https://example.com/meditations/stress-relief.mp3"},
		{ID: "2", Title: "Deep Sleep Meditation", Description: "Calming meditation to help you unwind and prepare for a restful night's sleep.", Duration: "20 min", Category: "sleep", Level: "all", Featured: true, AudioURL: "https://example.com/meditations/deep-sleep.mp3"},
		{ID: "3", Title: "Morning Mindfulness", Description: "Start your day with clarity and intention through this gentle guided meditation.", Duration: "15 min", Category: "focus", Level: "beginner", AudioURL: "https://example.com/meditations/morning.mp3"},
		{ID: "4", Title: "Anxiety Relief", Description: "Guided meditation to help calm anxious thoughts and find inner peace.", Duration: "18 min", Category: "anxiety", Level: "all", Featured: true, AudioURL: "https://example.com/meditations/anxiety.mp3"},
		{ID: "5", Title: "Body Scan Relaxation", Description: "Progressive relaxation technique to release tension throughout your body.", Duration: "15 min", Category: "stress", Level: "intermediate", AudioURL: "https://example.com/meditations/body-scan.mp3"},
		{ID: "6", Title: "5-Minute Calm", Description: "Quick meditation for busy moments when you need to center yourself.", Duration: "5 min", Category: "general", Level: "beginner", AudioURL: "https://example.com/meditations/quick-calm.mp3"},
	}
}

func CrisisResources() []wellness.CrisisResource {
	return []wellness.CrisisResource{
		{ID: "1", Name: "National Suicide Prevention Lifeline", Description: "Free and confidential support for people in distress, plus prevention and crisis resources.", Phone: "1-800-273-8255", Available: "24/7", Website: "suicidepreventionlifeline.org", Category: "suicide"},
		{ID: "2", Name: "Crisis Text Line", Description: "Text HOME to 741741 to connect with a Crisis Counselor. Free 24/7 support.", Phone: "Text HOME to 741741", Available: "24/7", Website: "crisistextline.org", Category: "crisis"},
		{ID: "3", Name: "SAMHSA National Helpline", Description: "Treatment referral and information service for individuals facing mental health or substance use disorders.", Phone: "1-800-662-4357", Available: "24/7", Website: "samhsa.gov/find-help/national-helpline", Category: "addiction"},
		{ID: "4", Name: "National Domestic Violence Hotline", Description: "Support, crisis intervention, safety planning, and referrals for survivors of domestic violence.", Phone: "1-800-799-7233", Available: "24/7", Website: "thehotline.org", Category: "domestic"},
		{ID: "5", Name: "Trevor Project", Description: "Crisis intervention and suicide prevention services for LGBTQ young people under 25.", Phone: "1-866-488-7386", Available: "24/7", Website: "thetrevorproject.org", Category: "youth"},
	}
}

func Tutorials() []tutorial.Tutorial {
	return []tutorial.Tutorial{
		{
			ID:          "1",
			Title:       "Basic Self-Defense Techniques for Beginners",
			Description: "Essential self-defense techniques covering proper stance, basic blocks, strikes and escape maneuvers.",
			VideoURL:    "https://example.com/videos/basic-selfdefense",
			Duration:    "18:45",
			Instructor:  "Sarah Martinez",
			Level:       "beginner",
			Category:    "Self-Defense",
			Tags:        []string{"basics", "beginners", "techniques", "safety"},
			Published:   "Apr 02, 2025",
			Views:       12432,
			Rating:      4.8,
			Quiz: []tutorial.Question{
				{
					ID:        "1",
					TimeStamp: "04:30",
					Text:      "What is the primary purpose of the basic stance demonstrated?",
					Options: []string{
						"To appear intimidating to an attacker",
						"To prepare to strike with maximum force",
						"To maintain balance and stability",
						"To signal to others you need help",
					},
					Correct:     2,
					Explanation: "The basic stance helps you maintain balance and stability so you are not easily pushed or pulled off balance.",
				},
				{
					ID:        "2",
					TimeStamp: "09:15",
					Text:      "When executing a palm strike, which part of the hand should make contact?",
					Options: []string{
						"The fingers",
						"The heel of the palm",
						"The side of the hand",
						"The knuckles",
					},
					Correct:     1,
					Explanation: "The heel of the palm delivers force with less risk of injuring your hand than knuckles or fingers.",
				},
				{
					ID:        "3",
					TimeStamp: "15:20",
					Text:      "What should you do immediately after successfully breaking free from a grab?",
					Options: []string{
						"Counterattack the assailant",
						"Call for help while maintaining visual contact",
						"Create distance and evaluate escape routes",
						"Take a defensive stance and wait",
					},
					Correct:     2,
					Explanation: "Your priority is creating distance and finding an escape route, not engaging further.",
				},
			},
			Scenarios: []tutorial.Scenario{
				{
					ID:          "1",
					Title:       "Wrist Grab Escape Practice",
					Description: "Practice escaping from different types of wrist grabs using the techniques demonstrated in the tutorial.",
					Objectives: []string{
						"Master the circular escape motion",
						"Develop muscle memory for quick response",
					},
					Setup: "Work with a partner in a spacious area with soft flooring if possible.",
					Steps: []string{
						"Partner A grabs Partner B's wrist with moderate pressure",
						"Partner B practices the escape technique shown at 07:30",
						"Switch roles and repeat",
						"Gradually increase speed and pressure as technique improves",
					},
					Tips: []string{"Focus on technique rather than speed initially"},
				},
				{
					ID:          "2",
					Title:       "Situational Awareness Drill",
					Description: "Practice the situational awareness techniques covered in the tutorial in various environments.",
					Objectives: []string{
						"Develop habitual scanning of your environment",
						"Practice identifying potential escape routes",
					},
					Setup: "This can be practiced during daily activities in public spaces. No partner is required.",
					Steps: []string{
						"Pause in a public space and identify all exits",
						"Note barriers between you and those exits",
						"Practice the 30-second assessment shown at 12:15",
					},
					Tips: []string{"Vary the locations where you practice to develop adaptability"},
				},
			},
		},
	}
}
